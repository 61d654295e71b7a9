//go:build !solution

package rwlock

import "time"

//go:generate mockgen -source=observer.go -destination=mock_observer_test.go -package=rwlock

// Mode is the lock role an event refers to.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Observer receives lock events.
//
// Methods are called with the internal monitor held, so they must be fast
// and must not call back into the lock.
type Observer interface {
	// Acquired is called for every granted hold, reentrant ones included.
	// waited is the time the call spent before the hold was granted.
	Acquired(mode Mode, waited time.Duration)
	// Released is called for every dropped hold.
	Released(mode Mode)
	// Canceled is called when a cancellable acquisition gives up.
	Canceled(mode Mode)
	// TimedOut is called when a timed acquisition fails.
	TimedOut(mode Mode)
	// IllegalRelease is called when a caller releases a role it does not hold.
	IllegalRelease(mode Mode)
	// QueueLength reports the writer queue length after every change.
	QueueLength(n int)
}

type nopObserver struct{}

func (nopObserver) Acquired(Mode, time.Duration) {}
func (nopObserver) Released(Mode)                {}
func (nopObserver) Canceled(Mode)                {}
func (nopObserver) TimedOut(Mode)                {}
func (nopObserver) IllegalRelease(Mode)          {}
func (nopObserver) QueueLength(int)              {}
