//go:build !change

package rwlock

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestObserver_AcquireRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := NewMockObserver(ctrl)
	l := New(WithObserver(obs), WithClock(clockwork.NewFakeClock()))

	gomock.InOrder(
		obs.EXPECT().Acquired(ModeWrite, time.Duration(0)),
		obs.EXPECT().Acquired(ModeRead, time.Duration(0)),
		obs.EXPECT().Released(ModeRead),
		obs.EXPECT().Released(ModeWrite),
	)

	require.True(t, l.TryLock())
	l.RLock()
	l.RUnlock()
	l.Unlock()
}

func TestObserver_CanceledWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := NewMockObserver(ctrl)
	l := New(WithObserver(obs))
	h := l.Handle(1 << 40)

	obs.EXPECT().Acquired(ModeWrite, gomock.Any())
	gomock.InOrder(
		obs.EXPECT().QueueLength(1),
		obs.EXPECT().QueueLength(0),
		obs.EXPECT().Canceled(ModeWrite),
	)
	obs.EXPECT().Released(ModeWrite)

	require.True(t, h.TryLock())
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() {
		errCh <- l.LockContext(ctx)
	}()
	waitSnapshot(t, l, queued(1))
	cancel()
	require.ErrorIs(t, <-errCh, ErrCanceled)
	h.Unlock()
}

func TestObserver_IllegalReleaseIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := NewMockObserver(ctrl)
	core, logs := observer.New(zap.DebugLevel)
	l := New(WithObserver(obs), WithLogger(zap.New(core)))

	obs.EXPECT().IllegalRelease(ModeRead)
	obs.EXPECT().IllegalRelease(ModeWrite)

	l.RUnlock()
	l.Unlock()

	entries := logs.FilterMessage("release of a lock that is not held").All()
	require.Len(t, entries, 2)
	require.Equal(t, "read", entries[0].ContextMap()["mode"])
	require.Equal(t, "write", entries[1].ContextMap()["mode"])
}

func TestMode_String(t *testing.T) {
	require.Equal(t, "read", ModeRead.String())
	require.Equal(t, "write", ModeWrite.String())
	require.Equal(t, "unknown", Mode(42).String())
}
