// Package input turns raw terminal bytes into per-frame input and samples
// movement intent for the simulation.
package input

import (
	"bufio"
	"time"
)

// KeyHold is how long a movement key counts as held after its last byte.
// Terminals send no key-release events, so a held key is one whose
// auto-repeat keeps arriving within this window.
const KeyHold = 120 * time.Millisecond

// Mouse is a pointer report in 1-based terminal cells.
type Mouse struct {
	Col, Row int
}

// Input is the input state for one frame. Movement flags are held states;
// all other flags are edge-triggered and only set on the frame the key
// arrived.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool

	Quit      bool // q or Q
	Interrupt bool // Ctrl-C
	Space     bool
	Enter     bool
	Backspace bool
	Escape    bool
	Pause     bool // p or P
	Mute      bool // m or M

	Mouse *Mouse // last pointer report this frame, nil if none
	Text  []byte // printable bytes typed this frame
}

// Any reports whether any byte arrived this frame.
func (in Input) Any() bool {
	return in.Quit || in.Interrupt || in.Space || in.Enter || in.Backspace ||
		in.Escape || in.Pause || in.Mute || in.Mouse != nil || len(in.Text) > 0
}

// heldState tracks the last time each movement key arrived.
type heldState struct {
	left, right, up, down time.Time
}

// Stream delivers input bytes via a channel and keeps movement key state
// across frames.
type Stream struct {
	ch      chan byte
	held    heldState
	buf     []byte
	pending []byte // unfinished escape sequence carried to the next frame
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The channel is closed when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// newStreamFromChannel is used by tests to feed bytes directly.
func newStreamFromChannel(ch chan byte) *Stream {
	return &Stream{ch: ch}
}

// ReadInput drains all pending bytes without blocking and parses them.
// An escape sequence cut off at the end of the drained bytes is kept for
// the next frame; if no more bytes arrive by then it is taken as it is.
// closed reports that the underlying reader has ended.
func ReadInput(s *Stream, now time.Time) (in Input, closed bool) {
	s.buf = append(s.buf[:0], s.pending...)
	carried := len(s.buf)
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	final := closed || len(s.buf) == carried
	in, rest := parse(s.buf, &s.held, now, final)
	s.pending = append(s.pending[:0], s.buf[rest:]...)
	return in, closed
}

// ResetHeld forgets all held movement keys, e.g. across screen changes.
func ResetHeld(s *Stream) {
	s.held = heldState{}
}

// maxSeqLen bounds how many bytes an unfinished sequence may hold.
const maxSeqLen = 32

// parse decodes buf, updating held key timestamps, and builds the frame
// input. Unless final is set, an unfinished escape sequence at the end of
// buf is left unparsed and its start offset is returned as rest; otherwise
// rest is len(buf).
func parse(buf []byte, held *heldState, now time.Time, final bool) (in Input, rest int) {
	rest = len(buf)

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && len(buf)-i <= maxSeqLen && unfinishedSeq(buf[i:]) {
			if !final {
				rest = i
				break
			}
			if len(buf)-i > 1 {
				// a truncated sequence from a closed or stalled stream
				break
			}
		}

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if n, m, ok := parseSGRMouse(buf[i:]); ok {
				in.Mouse = &m
				i += n - 1
				continue
			}
			if i+2 < len(buf) {
				consumed := true
				switch buf[i+2] {
				case 'A':
					held.up = now
				case 'B':
					held.down = now
				case 'C':
					held.right = now
				case 'D':
					held.left = now
				default:
					consumed = false
				}
				if consumed {
					i += 2
					continue
				}
			}
		}

		switch b {
		case '\x03':
			in.Interrupt = true
		case '\x1b':
			in.Escape = true
		case '\r', '\n':
			in.Enter = true
		case '\b', '\x7f':
			in.Backspace = true
		case ' ':
			in.Space = true
		}

		switch b {
		case 'a', 'A':
			held.left = now
		case 'd', 'D':
			held.right = now
		case 'w', 'W':
			held.up = now
		case 's', 'S':
			held.down = now
		case 'q', 'Q':
			in.Quit = true
		case 'p', 'P':
			in.Pause = true
		case 'm', 'M':
			in.Mute = true
		}

		if b >= 0x20 && b < 0x7f {
			in.Text = append(in.Text, b)
		}
	}

	in.Left = now.Sub(held.left) < KeyHold
	in.Right = now.Sub(held.right) < KeyHold
	in.Up = now.Sub(held.up) < KeyHold
	in.Down = now.Sub(held.down) < KeyHold
	return in, rest
}

// unfinishedSeq reports whether seq, which starts with ESC and runs to the
// end of the buffer, is the beginning of an arrow or SGR mouse sequence
// whose remaining bytes have not arrived yet. A lone ESC counts.
func unfinishedSeq(seq []byte) bool {
	switch {
	case len(seq) == 1:
		return true
	case seq[1] != '[':
		return false
	case len(seq) == 2:
		return true
	case seq[2] != '<':
		return false
	}
	for _, c := range seq[3:] {
		if (c < '0' || c > '9') && c != ';' {
			return false
		}
	}
	return true
}

// parseSGRMouse decodes an SGR mouse report "ESC [ < b ; col ; row (M|m)"
// at the start of buf and returns the number of bytes consumed.
func parseSGRMouse(buf []byte) (int, Mouse, bool) {
	if len(buf) < 3 || buf[0] != '\x1b' || buf[1] != '[' || buf[2] != '<' {
		return 0, Mouse{}, false
	}

	var fields [3]int
	field := 0
	digits := 0
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			fields[field] = fields[field]*10 + int(c-'0')
			digits++
		case c == ';':
			if digits == 0 || field == 2 {
				return 0, Mouse{}, false
			}
			field++
			digits = 0
		case c == 'M' || c == 'm':
			if field != 2 || digits == 0 {
				return 0, Mouse{}, false
			}
			return i + 1, Mouse{Col: fields[1], Row: fields[2]}, true
		default:
			return 0, Mouse{}, false
		}
	}
	return 0, Mouse{}, false
}

// ApplyMovement mirrors held movement flags onto the sampler using the
// arrow key names.
func ApplyMovement(in Input, s *Sampler) {
	s.SetKey(KeyArrowLeft, in.Left)
	s.SetKey(KeyArrowRight, in.Right)
	s.SetKey(KeyArrowUp, in.Up)
	s.SetKey(KeyArrowDown, in.Down)
}
