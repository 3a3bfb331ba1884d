package core

// PointerDispatcher is the program-wide pointer source. Controls subscribe to
// releases for the lifetime of a drag so that letting go outside the control
// still ends the gesture.
type PointerDispatcher struct {
	release []releaseHandler
	nextID  uint32

	pressed bool
}

type releaseHandler struct {
	id uint32
	fn func(x, y float64)
}

// ReleaseHandle removes a release subscription. The zero value is inert.
type ReleaseHandle struct {
	id uint32
	d  *PointerDispatcher
}

func NewPointerDispatcher() *PointerDispatcher {
	return &PointerDispatcher{}
}

func (p *PointerDispatcher) OnRelease(fn func(x, y float64)) ReleaseHandle {
	p.nextID++
	p.release = append(p.release, releaseHandler{id: p.nextID, fn: fn})
	return ReleaseHandle{id: p.nextID, d: p}
}

func (h ReleaseHandle) Remove() {
	if h.d == nil {
		return
	}
	s := h.d.release
	for i := range s {
		if s[i].id == h.id {
			h.d.release = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

// Listeners reports how many release subscriptions are live.
func (p *PointerDispatcher) Listeners() int {
	return len(p.release)
}

func (p *PointerDispatcher) Press() {
	p.pressed = true
}

// Pressed reports whether the button is down.
func (p *PointerDispatcher) Pressed() bool { return p.pressed }

// Release notifies every subscriber registered before the call, in
// registration order. A subscriber removed during the dispatch, by itself or
// by an earlier one, is not called.
func (p *PointerDispatcher) Release(x, y float64) {
	p.pressed = false
	snapshot := append([]releaseHandler(nil), p.release...)
	for _, h := range snapshot {
		if !p.live(h.id) {
			continue
		}
		h.fn(x, y)
	}
}

func (p *PointerDispatcher) live(id uint32) bool {
	for _, h := range p.release {
		if h.id == id {
			return true
		}
	}
	return false
}
