package loop

import "time"

// TickHandle identifies a pending frame request. Zero means none.
type TickHandle uint64

// Scheduler runs callbacks on the next display refresh, one refresh per
// request, like a browser's animation-frame queue.
type Scheduler interface {
	// RequestFrame queues fn for the next refresh.
	RequestFrame(fn func(now time.Time)) TickHandle
	// CancelFrame drops a pending request. Unknown handles are ignored.
	CancelFrame(h TickHandle)
}

type frameRequest struct {
	handle TickHandle
	fn     func(now time.Time)
}

// FrameScheduler is a Scheduler driven by an explicit Refresh call from
// the client's frame loop. It is single-threaded: RequestFrame, CancelFrame
// and Refresh must all be called from the goroutine that owns the loop.
type FrameScheduler struct {
	last    TickHandle
	pending []frameRequest
	running []frameRequest
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// RequestFrame implements Scheduler.
func (f *FrameScheduler) RequestFrame(fn func(now time.Time)) TickHandle {
	f.last++
	f.pending = append(f.pending, frameRequest{handle: f.last, fn: fn})
	return f.last
}

// CancelFrame implements Scheduler. A request cancelled while its batch is
// running is skipped.
func (f *FrameScheduler) CancelFrame(h TickHandle) {
	if h == 0 {
		return
	}
	for i := range f.pending {
		if f.pending[i].handle == h {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
	for i := range f.running {
		if f.running[i].handle == h {
			f.running[i].fn = nil
			return
		}
	}
}

// Refresh runs every request queued before this call. Requests made by the
// callbacks wait for the next refresh. Returns the number of callbacks run.
func (f *FrameScheduler) Refresh(now time.Time) int {
	f.running, f.pending = f.pending, f.running[:0]
	ran := 0
	for i := range f.running {
		fn := f.running[i].fn
		if fn == nil {
			continue
		}
		f.running[i].fn = nil
		fn(now)
		ran++
	}
	f.running = f.running[:0]
	return ran
}

// Pending returns the number of queued requests.
func (f *FrameScheduler) Pending() int {
	return len(f.pending)
}
