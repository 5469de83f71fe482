package tracker

import "sync"

// View is one consistent snapshot of the shared presence view. State is nil
// until the first tick publishes.
type View struct {
	State  State
	Name   *string
	Status *string
}

// Holder is the mutex-guarded container shared between the polling loop
// (sole writer) and render consumers (readers). The lock is held only for
// the copy itself, never across I/O. The zero value is ready to use.
type Holder struct {
	mu   sync.Mutex
	view View
}

// Publish atomically replaces the whole view, so readers never observe a
// state paired with another tick's name or status.
func (h *Holder) Publish(state State, name, status *string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.view = View{State: state, Name: name, Status: status}
}

// Snapshot returns the last published view.
func (h *Holder) Snapshot() View {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.view
}
