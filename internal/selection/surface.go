package selection

import "sync"

// Surface is one place on the page that mirrors the selection, such as the
// desktop panel or the mobile modal.
type Surface interface {
	Show(DisplayState)
}

// Mirror is a Surface that keeps the last state it was shown. Page
// templates read from it.
type Mirror struct {
	Name string

	mu    sync.RWMutex
	state DisplayState
	shown int
}

// NewMirror returns a named, empty mirror.
func NewMirror(name string) *Mirror { return &Mirror{Name: name} }

// Show implements Surface.
func (m *Mirror) Show(st DisplayState) {
	m.mu.Lock()
	m.state = st
	m.shown++
	m.mu.Unlock()
}

// State returns the last state shown.
func (m *Mirror) State() DisplayState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Renders returns how many times the mirror has been written.
func (m *Mirror) Renders() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shown
}
