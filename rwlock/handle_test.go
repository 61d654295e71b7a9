//go:build !change

package rwlock

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestHandle_ZeroOwner(t *testing.T) {
	l := New()
	require.PanicsWithError(t, ErrInvalidOwner.Error(), func() { l.Handle(0) })
}

func TestHandle_MovesBetweenGoroutines(t *testing.T) {
	l := New()
	h := l.Handle(7)
	require.Equal(t, OwnerID(7), h.Owner())

	h.Lock()
	h.RLock()
	require.Equal(t, 1, h.WriteHoldCount())
	require.Equal(t, 1, h.ReadHoldCount())
	// вызывающая горутина сама ничего не держит
	require.Zero(t, l.WriteHoldCount())

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Unlock()
		h.RUnlock()
	}()
	<-done
	requireFree(t, l)
}

func TestHandle_AllFlavours(t *testing.T) {
	l := New()
	a := l.Handle(1)
	b := l.Handle(2)
	ctx := context.Background()

	require.NoError(t, a.LockContext(ctx))
	require.False(t, a.LockDeferred(ctx))
	ok, err := a.TryLockFor(ctx, time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, a.TryLock())
	require.Equal(t, 4, a.WriteHoldCount())

	ok, err = b.TryRLockFor(ctx, 10*time.Millisecond)
	require.NoError(t, err)
	require.False(t, ok)

	for i := 0; i < 4; i++ {
		a.Unlock()
	}

	require.NoError(t, b.RLockContext(ctx))
	require.False(t, b.RLockDeferred(ctx))
	require.True(t, b.TryRLock())
	b.RLocker().Lock()
	require.Equal(t, 4, b.ReadHoldCount())
	b.RLocker().Unlock()
	for i := 0; i < 3; i++ {
		b.RUnlock()
	}
	requireFree(t, l)
}

func TestRWLock_InvariantsUnderLoad(t *testing.T) {
	l := New()

	const (
		workers = 8
		rounds  = 300
	)
	var g errgroup.Group
	stop := make(chan struct{})

	var checker errgroup.Group
	checker.Go(func() error {
		for {
			select {
			case <-stop:
				return nil
			default:
			}
			if err := l.Snapshot().Validate(); err != nil {
				return err
			}
		}
	})

	for w := 0; w < workers; w++ {
		h := l.Handle(OwnerID(1<<40 + w))
		rnd := rand.New(rand.NewSource(int64(w)))
		g.Go(func() error {
			ctx := context.Background()
			for i := 0; i < rounds; i++ {
				switch rnd.Intn(6) {
				case 0:
					h.Lock()
					h.Lock()
					h.RLock()
					h.Unlock()
					h.Unlock()
					h.RUnlock()
				case 1:
					h.RLock()
					h.RUnlock()
				case 2:
					if h.TryLock() {
						h.Unlock()
					}
				case 3:
					if h.TryRLock() {
						h.RUnlock()
					}
				case 4:
					ok, err := h.TryLockFor(ctx, time.Millisecond)
					if err != nil {
						return err
					}
					if ok {
						h.Unlock()
					}
				case 5:
					cctx, cancel := context.WithTimeout(ctx, time.Millisecond)
					if h.LockContext(cctx) == nil {
						h.Unlock()
					}
					cancel()
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	close(stop)
	require.NoError(t, checker.Wait())
	requireFree(t, l)
}
