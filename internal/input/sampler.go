package input

// Movement key names. Both the modern and the legacy spelling of each
// direction are accepted.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyLeft       = "Left"
	KeyRight      = "Right"
	KeyUp         = "Up"
	KeyDown       = "Down"
)

// Point is a pointer position in play-area units.
type Point struct {
	X, Y float64
}

// Intent is the movement resolved for one frame. When Absolute is set the
// player's top-left corner moves to (X, Y); otherwise (DX, DY) is added to
// the current position.
type Intent struct {
	Absolute bool
	X, Y     float64
	DX, DY   float64
}

// Apply returns the position after applying the intent to (x, y).
func (in Intent) Apply(x, y float64) (float64, float64) {
	if in.Absolute {
		return in.X, in.Y
	}
	return x + in.DX, y + in.DY
}

// Sampler tracks held movement keys and the latest pointer or touch
// coordinate, and resolves them to one Intent per frame.
// It is not safe for concurrent use; the owning session drives it.
type Sampler struct {
	held    map[string]bool
	pointer Point
	hasPtr  bool
}

// NewSampler returns a sampler with no keys held and no pointer.
func NewSampler() *Sampler {
	return &Sampler{held: make(map[string]bool)}
}

// KeyDown marks a key as held.
func (s *Sampler) KeyDown(name string) {
	s.held[name] = true
}

// KeyUp marks a key as released.
func (s *Sampler) KeyUp(name string) {
	delete(s.held, name)
}

// SetKey sets the held state of a key.
func (s *Sampler) SetKey(name string, held bool) {
	if held {
		s.KeyDown(name)
	} else {
		s.KeyUp(name)
	}
}

// PointerMove records a pointer position inside the play area.
func (s *Sampler) PointerMove(x, y float64) {
	s.pointer = Point{X: x, Y: y}
	s.hasPtr = true
}

// PointerLeave clears the pointer when it exits the play area.
func (s *Sampler) PointerLeave() {
	s.hasPtr = false
}

// TouchStart records the first touch point.
func (s *Sampler) TouchStart(x, y float64) {
	s.PointerMove(x, y)
}

// TouchMove records the moved touch point.
func (s *Sampler) TouchMove(x, y float64) {
	s.PointerMove(x, y)
}

// TouchEnd clears the pointer once no touches remain.
func (s *Sampler) TouchEnd(remaining int) {
	if remaining == 0 {
		s.hasPtr = false
	}
}

// Pointer returns the stored pointer coordinate, if any.
func (s *Sampler) Pointer() (Point, bool) {
	return s.pointer, s.hasPtr
}

// Reset releases every key and clears the pointer.
func (s *Sampler) Reset() {
	clear(s.held)
	s.hasPtr = false
}

func (s *Sampler) left() bool  { return s.held[KeyArrowLeft] || s.held[KeyLeft] }
func (s *Sampler) right() bool { return s.held[KeyArrowRight] || s.held[KeyRight] }
func (s *Sampler) up() bool    { return s.held[KeyArrowUp] || s.held[KeyUp] }
func (s *Sampler) down() bool  { return s.held[KeyArrowDown] || s.held[KeyDown] }

// Resolve samples the movement intent for this frame for a player of the
// given size and speeds. Any held movement key discards the stored pointer,
// so keyboard input takes over until the pointer moves again.
func (s *Sampler) Resolve(width, height, speed, verticalSpeed float64) Intent {
	if s.left() || s.right() || s.up() || s.down() {
		s.hasPtr = false
	}

	if s.hasPtr {
		return Intent{
			Absolute: true,
			X:        s.pointer.X - width/2,
			Y:        s.pointer.Y - height/2,
		}
	}

	var in Intent
	if s.left() {
		in.DX -= speed
	}
	if s.right() {
		in.DX += speed
	}
	if s.up() {
		in.DY -= verticalSpeed
	}
	if s.down() {
		in.DY += verticalSpeed
	}
	return in
}
