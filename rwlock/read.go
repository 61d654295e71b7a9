//go:build !solution

package rwlock

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RLock locks l for reading.
//
// It blocks while another goroutine writes or while any writer is queued,
// unless the caller itself holds the write lock (downgrade).
//
// Recursive read locking is counted, but it is not exempt from writer
// preference: a reader that calls RLock again while a writer is queued waits
// for that writer, and the writer waits for the reader. Take a second read
// hold only when no writer can be waiting, or use TryRLock.
func (l *RWLock) RLock() {
	l.rlockDeferred(context.Background(), currentOwner())
}

// RLockDeferred locks l for reading like RLock. Cancellation of ctx does not
// abort the wait; it is reported as interrupted once the lock is held.
func (l *RWLock) RLockDeferred(ctx context.Context) (interrupted bool) {
	return l.rlockDeferred(ctx, currentOwner())
}

// RLockContext locks l for reading or returns an error wrapping ErrCanceled
// and the context error if ctx is done first. On error the caller holds
// nothing.
func (l *RWLock) RLockContext(ctx context.Context) error {
	return l.rlockContext(ctx, currentOwner())
}

// TryRLock tries to lock l for reading without blocking
// and reports whether it succeeded.
func (l *RWLock) TryRLock() bool {
	return l.tryRLock(currentOwner())
}

// TryRLockFor tries to lock l for reading, waiting at most timeout.
// It returns false and a nil error when the timeout elapses, and false with
// an error wrapping ErrCanceled when ctx is done first.
func (l *RWLock) TryRLockFor(ctx context.Context, timeout time.Duration) (bool, error) {
	return l.tryRLockFor(ctx, currentOwner(), timeout)
}

// RUnlock undoes a single RLock call of the calling goroutine.
// Calling RUnlock without a read hold does nothing
// unless the lock was created WithStrictRelease.
func (l *RWLock) RUnlock() {
	l.runlock(currentOwner())
}

func (l *RWLock) rlockDeferred(ctx context.Context, owner OwnerID) bool {
	start := l.clock.Now()

	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	_, interrupted := l.await(waitSpec{ctx: ctx, deferred: true}, func() bool {
		return l.s.canBecomeReader(owner)
	})
	l.grantRead(owner, start)
	return interrupted
}

func (l *RWLock) rlockContext(ctx context.Context, owner OwnerID) error {
	start := l.clock.Now()

	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	res, _ := l.await(waitSpec{ctx: ctx}, func() bool {
		return l.s.canBecomeReader(owner)
	})
	if res == canceled {
		l.observer.Canceled(ModeRead)
		l.logger.Debug("read acquisition canceled", zap.Uint64("owner", uint64(owner)))
		return canceledError(ctx, ModeRead)
	}
	l.grantRead(owner, start)
	return nil
}

func (l *RWLock) tryRLock(owner OwnerID) bool {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	if !l.s.canBecomeReader(owner) {
		return false
	}
	l.s.addReader(owner)
	l.observer.Acquired(ModeRead, 0)
	return true
}

func (l *RWLock) tryRLockFor(ctx context.Context, owner OwnerID, timeout time.Duration) (bool, error) {
	start := l.clock.Now()
	w := waitSpec{ctx: ctx, timed: true, deadline: start.Add(timeout)}

	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	res, _ := l.await(w, func() bool {
		return l.s.canBecomeReader(owner)
	})
	switch res {
	case canceled:
		l.observer.Canceled(ModeRead)
		l.logger.Debug("timed read acquisition canceled", zap.Uint64("owner", uint64(owner)))
		return false, canceledError(ctx, ModeRead)
	case timedOut:
		l.observer.TimedOut(ModeRead)
		l.logger.Debug("timed read acquisition expired",
			zap.Uint64("owner", uint64(owner)),
			zap.Duration("timeout", timeout),
		)
		return false, nil
	}
	l.grantRead(owner, start)
	return true, nil
}

// grantRead records a read hold. l.m.mu must be held.
func (l *RWLock) grantRead(owner OwnerID, start time.Time) {
	l.s.addReader(owner)
	l.observer.Acquired(ModeRead, l.clock.Since(start))
}

func (l *RWLock) runlock(owner OwnerID) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	held, drained := l.s.removeReader(owner)
	if !held {
		l.illegalRelease(owner, ModeRead)
		return
	}
	l.observer.Released(ModeRead)
	if drained {
		// писатель из головы очереди может стать владельцем
		l.m.broadcast()
	}
}
