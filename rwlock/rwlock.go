//go:build !solution

package rwlock

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// A RWLock is a reentrant reader/writer mutual exclusion lock.
// The lock can be held by an arbitrary number of readers or a single writer.
//
// Holds belong to the calling goroutine: the goroutine that locked a role
// must be the one that unlocks it, and it may lock the same role again
// without blocking itself. Every lock call must be matched by an unlock call.
//
// Writers are preferred: once a writer waits, new readers block until every
// writer queued before them has finished. Writers are served in the order they
// started waiting. Readers have no ordering among themselves.
//
// A goroutine holding the write lock may also take the read lock
// (downgrade). A goroutine holding only the read lock that asks for the write
// lock waits like any other writer and deadlocks itself with a blocking call;
// use TryLockFor if that is possible.
//
// A RWLock must be created with New and must not be copied after first use.
type RWLock struct {
	m monitor
	s state

	clock    clockwork.Clock
	logger   *zap.Logger
	observer Observer
	strict   bool
}

// Option configures a RWLock.
type Option func(*RWLock)

// WithClock sets the time source of timed acquisitions.
func WithClock(clock clockwork.Clock) Option {
	return func(l *RWLock) {
		l.clock = clock
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *zap.Logger) Option {
	return func(l *RWLock) {
		l.logger = logger
	}
}

// WithObserver installs an event observer.
func WithObserver(o Observer) Option {
	return func(l *RWLock) {
		l.observer = o
	}
}

// WithStrictRelease makes RUnlock and Unlock panic with ErrNotHeld when the
// caller does not hold the role. By default such calls are no-ops.
func WithStrictRelease() Option {
	return func(l *RWLock) {
		l.strict = true
	}
}

// New creates an unlocked *RWLock.
func New(opts ...Option) *RWLock {
	l := &RWLock{
		m:        newMonitor(),
		s:        newState(),
		clock:    clockwork.NewRealClock(),
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type outcome int

const (
	acquired outcome = iota
	canceled
	timedOut
)

// waitSpec describes how a blocking acquisition reacts to ctx and time.
type waitSpec struct {
	ctx context.Context
	// deferred keeps waiting after ctx is done and only reports it.
	deferred bool
	timed    bool
	deadline time.Time
}

// await blocks until eligible() holds. l.m.mu must be held and is held on
// return. On canceled or timedOut the caller must retract its request.
func (l *RWLock) await(w waitSpec, eligible func() bool) (res outcome, interrupted bool) {
	done := w.ctx.Done()
	for !eligible() {
		var (
			timer  clockwork.Timer
			expire <-chan time.Time
		)
		if w.timed {
			remaining := w.deadline.Sub(l.clock.Now())
			if remaining <= 0 {
				return timedOut, interrupted
			}
			timer = l.clock.NewTimer(remaining)
			expire = timer.Chan()
		}

		l.s.waiting++
		reason := l.m.wait(done, expire)
		l.s.waiting--
		if timer != nil {
			timer.Stop()
		}

		if w.deferred {
			// запоминаем отмену и ждём дальше
			if done != nil && w.ctx.Err() != nil {
				interrupted = true
				done = nil
			}
			continue
		}
		if reason == wokeCanceled {
			if eligible() {
				return acquired, interrupted
			}
			return canceled, interrupted
		}
	}
	return acquired, interrupted
}

// ReadHoldCount returns the number of read holds of the calling goroutine.
func (l *RWLock) ReadHoldCount() int {
	return l.readHoldCount(currentOwner())
}

// WriteHoldCount returns the number of write holds of the calling goroutine.
func (l *RWLock) WriteHoldCount() int {
	return l.writeHoldCount(currentOwner())
}

func (l *RWLock) readHoldCount(owner OwnerID) int {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.s.readHolds(owner)
}

func (l *RWLock) writeHoldCount(owner OwnerID) int {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.s.writeHolds(owner)
}

// Snapshot returns a copy of the whole lock state.
func (l *RWLock) Snapshot() Snapshot {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()
	return l.s.snapshot()
}

// RLocker returns a sync.Locker that implements Lock and Unlock
// by calling l.RLock and l.RUnlock.
func (l *RWLock) RLocker() sync.Locker {
	return (*rlocker)(l)
}

type rlocker RWLock

func (r *rlocker) Lock()   { (*RWLock)(r).RLock() }
func (r *rlocker) Unlock() { (*RWLock)(r).RUnlock() }

func (l *RWLock) illegalRelease(owner OwnerID, mode Mode) {
	l.observer.IllegalRelease(mode)
	l.logger.Debug("release of a lock that is not held",
		zap.Uint64("owner", uint64(owner)),
		zap.Stringer("mode", mode),
	)
	if l.strict {
		panic(ErrNotHeld)
	}
}
