//go:build !solution

package rwlock

import (
	"sync"
	"time"
)

type wakeReason int

const (
	wokeUp wakeReason = iota
	wokeCanceled
	wokeExpired
)

// monitor is a mutex with a broadcast-only wait condition.
// Unlike sync.Cond a wait can also end on context cancellation or a timer.
type monitor struct {
	mu   sync.Mutex
	wake chan struct{}
}

func newMonitor() monitor {
	return monitor{wake: make(chan struct{})}
}

// broadcast wakes every waiter. mu must be held.
func (m *monitor) broadcast() {
	close(m.wake)
	m.wake = make(chan struct{})
}

// wait releases mu, blocks until broadcast, done or expire, and
// reacquires mu before returning. mu must be held.
// nil done or expire never fire.
func (m *monitor) wait(done <-chan struct{}, expire <-chan time.Time) wakeReason {
	ch := m.wake
	m.mu.Unlock()
	defer m.mu.Lock()

	select {
	case <-ch:
		return wokeUp
	case <-done:
		return wokeCanceled
	case <-expire:
		return wokeExpired
	}
}
