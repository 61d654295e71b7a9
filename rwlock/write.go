//go:build !solution

package rwlock

import (
	"container/list"
	"context"
	"time"

	"go.uber.org/zap"
)

// Lock locks l for writing.
// If the lock is held for reading or writing by other goroutines, or other
// writers are queued, Lock blocks until every earlier writer is done and
// all readers have left. Lock may be called again by the current writer.
func (l *RWLock) Lock() {
	l.lockDeferred(context.Background(), currentOwner())
}

// LockDeferred locks l for writing like Lock. Cancellation of ctx does not
// abort the wait and the caller keeps its place in the writer queue; the
// cancellation is reported as interrupted once the lock is held.
func (l *RWLock) LockDeferred(ctx context.Context) (interrupted bool) {
	return l.lockDeferred(ctx, currentOwner())
}

// LockContext locks l for writing or returns an error wrapping ErrCanceled
// and the context error if ctx is done first. On error the caller is no
// longer queued and holds nothing.
func (l *RWLock) LockContext(ctx context.Context) error {
	return l.lockContext(ctx, currentOwner())
}

// TryLock tries to lock l for writing without blocking and reports whether it
// succeeded. It succeeds only for the current writer or when l is completely
// free; it never queues.
func (l *RWLock) TryLock() bool {
	return l.tryLock(currentOwner())
}

// TryLockFor tries to lock l for writing, waiting in the writer queue at most
// timeout. It returns false and a nil error when the timeout elapses, and
// false with an error wrapping ErrCanceled when ctx is done first. Either way
// the caller leaves the queue.
func (l *RWLock) TryLockFor(ctx context.Context, timeout time.Duration) (bool, error) {
	return l.tryLockFor(ctx, currentOwner(), timeout)
}

// Unlock undoes a single Lock call of the calling goroutine.
// When the last write hold is released, waiting readers and writers are woken.
// Calling Unlock without the write lock does nothing
// unless the lock was created WithStrictRelease.
func (l *RWLock) Unlock() {
	l.unlock(currentOwner())
}

func (l *RWLock) lockDeferred(ctx context.Context, owner OwnerID) bool {
	start := l.clock.Now()

	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	if l.reenterWrite(owner) {
		return false
	}
	req := l.enqueueWriter(owner)
	_, interrupted := l.await(waitSpec{ctx: ctx, deferred: true}, func() bool {
		return l.s.canBecomeWriter(owner, req)
	})
	l.grantWrite(owner, req, start)
	return interrupted
}

func (l *RWLock) lockContext(ctx context.Context, owner OwnerID) error {
	start := l.clock.Now()

	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	if l.reenterWrite(owner) {
		return nil
	}
	req := l.enqueueWriter(owner)
	res, _ := l.await(waitSpec{ctx: ctx}, func() bool {
		return l.s.canBecomeWriter(owner, req)
	})
	if res == canceled {
		l.retractWriter(req)
		l.observer.Canceled(ModeWrite)
		l.logger.Debug("write acquisition canceled", zap.Uint64("owner", uint64(owner)))
		return canceledError(ctx, ModeWrite)
	}
	l.grantWrite(owner, req, start)
	return nil
}

func (l *RWLock) tryLock(owner OwnerID) bool {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	if l.reenterWrite(owner) {
		return true
	}
	if !l.s.isFree() {
		return false
	}
	l.s.grantWriter(owner)
	l.observer.Acquired(ModeWrite, 0)
	return true
}

func (l *RWLock) tryLockFor(ctx context.Context, owner OwnerID, timeout time.Duration) (bool, error) {
	start := l.clock.Now()
	w := waitSpec{ctx: ctx, timed: true, deadline: start.Add(timeout)}

	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	if l.reenterWrite(owner) {
		return true, nil
	}
	req := l.enqueueWriter(owner)
	res, _ := l.await(w, func() bool {
		return l.s.canBecomeWriter(owner, req)
	})
	switch res {
	case canceled:
		l.retractWriter(req)
		l.observer.Canceled(ModeWrite)
		l.logger.Debug("timed write acquisition canceled", zap.Uint64("owner", uint64(owner)))
		return false, canceledError(ctx, ModeWrite)
	case timedOut:
		l.retractWriter(req)
		l.observer.TimedOut(ModeWrite)
		l.logger.Debug("timed write acquisition expired",
			zap.Uint64("owner", uint64(owner)),
			zap.Duration("timeout", timeout),
		)
		return false, nil
	}
	l.grantWrite(owner, req, start)
	return true, nil
}

// reenterWrite adds a hold if owner already writes. l.m.mu must be held.
func (l *RWLock) reenterWrite(owner OwnerID) bool {
	if l.s.writer != owner {
		return false
	}
	l.s.writerHolds++
	l.observer.Acquired(ModeWrite, 0)
	return true
}

func (l *RWLock) enqueueWriter(owner OwnerID) *list.Element {
	req := l.s.queue.push(owner)
	l.observer.QueueLength(l.s.queue.len())
	return req
}

// retractWriter removes a request that gave up. The head may have changed,
// so everybody re-checks.
func (l *RWLock) retractWriter(req *list.Element) {
	l.s.queue.remove(req)
	l.observer.QueueLength(l.s.queue.len())
	l.m.broadcast()
}

// grantWrite turns an eligible queued request into a write hold.
func (l *RWLock) grantWrite(owner OwnerID, req *list.Element, start time.Time) {
	l.s.queue.remove(req)
	l.observer.QueueLength(l.s.queue.len())
	if l.s.writer == owner {
		// тот же владелец успел захватить блокировку через другой Handle
		l.s.writerHolds++
	} else {
		l.s.grantWriter(owner)
	}
	l.observer.Acquired(ModeWrite, l.clock.Since(start))
}

func (l *RWLock) unlock(owner OwnerID) {
	l.m.mu.Lock()
	defer l.m.mu.Unlock()

	held, released := l.s.removeWriterHold(owner)
	if !held {
		l.illegalRelease(owner, ModeWrite)
		return
	}
	l.observer.Released(ModeWrite)
	if released {
		l.m.broadcast()
	}
}
