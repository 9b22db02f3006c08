package realtime

import (
	"sync"

	"verslohub/pkg/logger"
)

// Disposer terminates a previously established live subscription.
type Disposer func()

// Manager tracks the disposers of active subscriptions so an owning session
// can tear them all down when the authenticated identity changes, the active
// request changes, or the session ends. The list is only ever appended to or
// fully cleared.
type Manager struct {
	mu        sync.Mutex
	disposers []Disposer
}

func NewManager() *Manager {
	return &Manager{}
}

// Track registers a disposer. Register before the subscription can deliver
// data, so a racing teardown cannot leak the listener.
func (m *Manager) Track(d Disposer) {
	if d == nil {
		return
	}
	m.mu.Lock()
	m.disposers = append(m.disposers, d)
	m.mu.Unlock()
}

// DisposeAll invokes every tracked disposer exactly once, then clears the
// list. A panicking disposer is logged and does not stop the rest. Calling
// DisposeAll again is a no-op until new disposers are tracked.
func (m *Manager) DisposeAll() {
	m.mu.Lock()
	disposers := m.disposers
	m.disposers = nil
	m.mu.Unlock()

	for _, d := range disposers {
		dispose(d)
	}
}

func dispose(d Disposer) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Subscription disposer panicked: %v", r)
		}
	}()
	d()
}

// Active returns the number of tracked subscriptions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.disposers)
}
