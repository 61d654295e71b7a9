//go:build !solution

package rwlock

import (
	"context"
	"sync"
	"time"
)

// Handle is a view of a RWLock bound to an explicit owner instead of the
// calling goroutine. Holds taken through a Handle belong to its owner id, so
// work holding the lock may move between goroutines as long as it keeps
// using the same Handle.
//
// Owner ids share one space with goroutine ids; pick ids that cannot clash
// with goroutines using the lock directly.
type Handle struct {
	l     *RWLock
	owner OwnerID
}

// Handle returns a view of l for owner. It panics with ErrInvalidOwner
// if owner is zero.
func (l *RWLock) Handle(owner OwnerID) *Handle {
	if owner == 0 {
		panic(ErrInvalidOwner)
	}
	return &Handle{l: l, owner: owner}
}

// Owner returns the identity the handle acts as.
func (h *Handle) Owner() OwnerID { return h.owner }

func (h *Handle) RLock() { h.l.rlockDeferred(context.Background(), h.owner) }

func (h *Handle) RLockDeferred(ctx context.Context) (interrupted bool) {
	return h.l.rlockDeferred(ctx, h.owner)
}

func (h *Handle) RLockContext(ctx context.Context) error { return h.l.rlockContext(ctx, h.owner) }

func (h *Handle) TryRLock() bool { return h.l.tryRLock(h.owner) }

func (h *Handle) TryRLockFor(ctx context.Context, timeout time.Duration) (bool, error) {
	return h.l.tryRLockFor(ctx, h.owner, timeout)
}

func (h *Handle) RUnlock() { h.l.runlock(h.owner) }

func (h *Handle) Lock() { h.l.lockDeferred(context.Background(), h.owner) }

func (h *Handle) LockDeferred(ctx context.Context) (interrupted bool) {
	return h.l.lockDeferred(ctx, h.owner)
}

func (h *Handle) LockContext(ctx context.Context) error { return h.l.lockContext(ctx, h.owner) }

func (h *Handle) TryLock() bool { return h.l.tryLock(h.owner) }

func (h *Handle) TryLockFor(ctx context.Context, timeout time.Duration) (bool, error) {
	return h.l.tryLockFor(ctx, h.owner, timeout)
}

func (h *Handle) Unlock() { h.l.unlock(h.owner) }

func (h *Handle) ReadHoldCount() int { return h.l.readHoldCount(h.owner) }

func (h *Handle) WriteHoldCount() int { return h.l.writeHoldCount(h.owner) }

// RLocker returns a sync.Locker that read-locks through h.
func (h *Handle) RLocker() sync.Locker { return (*handleRLocker)(h) }

type handleRLocker Handle

func (r *handleRLocker) Lock()   { (*Handle)(r).RLock() }
func (r *handleRLocker) Unlock() { (*Handle)(r).RUnlock() }
