//go:build !solution

package lockstress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rogov-KS/rwlock/rwlock"
)

// ErrViolation is returned by Run when workers observed a broken lock guarantee.
var ErrViolation = errors.New("lock invariant violated")

// Report summarises one run.
type Report struct {
	RunID         string        `yaml:"run_id"`
	Elapsed       time.Duration `yaml:"-"`
	Reads         int64         `yaml:"reads"`
	Writes        int64         `yaml:"writes"`
	Downgrades    int64         `yaml:"downgrades"`
	Timeouts      int64         `yaml:"timeouts"`
	Cancellations int64         `yaml:"cancellations"`
	Interrupted   int64         `yaml:"interrupted"`
	Checks        int64         `yaml:"checks"`
	Violations    int64         `yaml:"violations"`
}

// MarshalYAML adds the elapsed time as a string.
func (r Report) MarshalYAML() (interface{}, error) {
	return struct {
		RunID         string `yaml:"run_id"`
		Elapsed       string `yaml:"elapsed"`
		Reads         int64  `yaml:"reads"`
		Writes        int64  `yaml:"writes"`
		Downgrades    int64  `yaml:"downgrades"`
		Timeouts      int64  `yaml:"timeouts"`
		Cancellations int64  `yaml:"cancellations"`
		Interrupted   int64  `yaml:"interrupted"`
		Checks        int64  `yaml:"checks"`
		Violations    int64  `yaml:"violations"`
	}{
		RunID:         r.RunID,
		Elapsed:       r.Elapsed.String(),
		Reads:         r.Reads,
		Writes:        r.Writes,
		Downgrades:    r.Downgrades,
		Timeouts:      r.Timeouts,
		Cancellations: r.Cancellations,
		Interrupted:   r.Interrupted,
		Checks:        r.Checks,
		Violations:    r.Violations,
	}, nil
}

// Runner drives a Config workload against a lock.
type Runner struct {
	cfg    Config
	lock   *rwlock.RWLock
	logger *zap.Logger

	// пробы внутри критических секций
	writersIn atomic.Int32
	readersIn atomic.Int32

	reads, writes, downgrades            atomic.Int64
	timeouts, cancellations, interrupted atomic.Int64
	checks, violations                   atomic.Int64
}

// NewRunner creates a Runner. The lock must not be used by anyone else
// during Run.
func NewRunner(cfg Config, lock *rwlock.RWLock, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, lock: lock, logger: logger}
}

// Run executes the workload until cfg.Duration elapses or ctx is done.
// The returned error wraps ErrViolation if any guarantee was broken.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if err := r.cfg.Validate(); err != nil {
		return Report{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return Report{}, fmt.Errorf("generate run id: %w", err)
	}
	logger := r.logger.With(zap.String("run_id", id.String()))
	logger.Info("stress run started",
		zap.Int("readers", r.cfg.Readers),
		zap.Int("writers", r.cfg.Writers),
		zap.Duration("duration", r.cfg.Duration),
	)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	workers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Readers; i++ {
		workers.Go(func() error { return r.reader(wctx) })
	}
	for i := 0; i < r.cfg.Writers; i++ {
		workers.Go(func() error { return r.writer(wctx) })
	}

	checkerCtx, stopChecker := context.WithCancel(context.Background())
	checkerDone := make(chan struct{})
	go func() {
		defer close(checkerDone)
		r.check(checkerCtx, logger)
	}()

	werr := workers.Wait()
	stopChecker()
	<-checkerDone

	r.checkOnce(logger)
	if s := r.lock.Snapshot(); s.Writer != 0 || len(s.Readers) != 0 || len(s.QueuedWriters) != 0 {
		r.violation(logger, "lock is not free after the run", zap.Any("snapshot", s))
	}

	rep := Report{
		RunID:         id.String(),
		Elapsed:       time.Since(start),
		Reads:         r.reads.Load(),
		Writes:        r.writes.Load(),
		Downgrades:    r.downgrades.Load(),
		Timeouts:      r.timeouts.Load(),
		Cancellations: r.cancellations.Load(),
		Interrupted:   r.interrupted.Load(),
		Checks:        r.checks.Load(),
		Violations:    r.violations.Load(),
	}
	logger.Info("stress run finished",
		zap.Int64("reads", rep.Reads),
		zap.Int64("writes", rep.Writes),
		zap.Int64("violations", rep.Violations),
		zap.Duration("elapsed", rep.Elapsed),
	)

	if werr != nil {
		return rep, werr
	}
	if rep.Violations > 0 {
		return rep, fmt.Errorf("%w: %d violations", ErrViolation, rep.Violations)
	}
	return rep, nil
}

func (r *Runner) violation(logger *zap.Logger, msg string, fields ...zap.Field) {
	r.violations.Add(1)
	logger.Error(msg, fields...)
}

func (r *Runner) check(ctx context.Context, logger *zap.Logger) {
	ticker := time.NewTicker(r.cfg.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.checkOnce(logger)
		}
	}
}

func (r *Runner) checkOnce(logger *zap.Logger) {
	r.checks.Add(1)
	if err := r.lock.Snapshot().Validate(); err != nil {
		r.violation(logger, "invalid lock state", zap.Error(err))
	}
}

// acquisition flavours, picked round-robin by every worker
const (
	flavourBlocking = iota
	flavourContext
	flavourTimed
	flavourTry
	flavourDeferred
	flavourCount
)

func (r *Runner) shouldCancel(i int) bool {
	return r.cfg.CancelEvery > 0 && i%r.cfg.CancelEvery == r.cfg.CancelEvery-1
}

// acquireCtx returns the context for the i-th acquisition: either the run
// context or one that is canceled right away.
func (r *Runner) acquireCtx(ctx context.Context, i int) (context.Context, context.CancelFunc) {
	if r.shouldCancel(i) {
		return context.WithTimeout(ctx, r.cfg.Timeout/10)
	}
	return context.WithCancel(ctx)
}

// failed accounts a failed acquisition and reports whether the worker must stop.
func (r *Runner) failed(ctx context.Context, ok bool, err error) (stop bool) {
	switch {
	case errors.Is(err, rwlock.ErrCanceled):
		if ctx.Err() != nil {
			return true
		}
		r.cancellations.Add(1)
	case err != nil:
		return true
	case !ok:
		r.timeouts.Add(1)
	}
	return false
}

func (r *Runner) reader(ctx context.Context) error {
	for i := 0; ctx.Err() == nil; i++ {
		actx, cancel := r.acquireCtx(ctx, i)
		ok, err := r.rlock(actx, i)
		cancel()
		if !ok {
			if r.failed(ctx, ok, err) {
				return nil
			}
			continue
		}

		r.readersIn.Add(1)
		if r.writersIn.Load() != 0 {
			r.violation(r.logger, "reader entered while a writer holds the lock")
		}
		r.hold()
		r.reads.Add(1)
		r.readersIn.Add(-1)
		r.lock.RUnlock()
	}
	return nil
}

func (r *Runner) rlock(ctx context.Context, i int) (bool, error) {
	switch i % flavourCount {
	case flavourBlocking:
		r.lock.RLock()
		return true, nil
	case flavourContext:
		err := r.lock.RLockContext(ctx)
		return err == nil, err
	case flavourTimed:
		return r.lock.TryRLockFor(ctx, r.cfg.Timeout)
	case flavourTry:
		return r.lock.TryRLock(), nil
	default:
		if r.lock.RLockDeferred(ctx) {
			r.interrupted.Add(1)
		}
		return true, nil
	}
}

func (r *Runner) writer(ctx context.Context) error {
	for i := 0; ctx.Err() == nil; i++ {
		actx, cancel := r.acquireCtx(ctx, i)
		ok, err := r.wlock(actx, i)
		cancel()
		if !ok {
			if r.failed(ctx, ok, err) {
				return nil
			}
			continue
		}

		if r.writersIn.Add(1) != 1 || r.readersIn.Load() != 0 {
			r.violation(r.logger, "writer is not exclusive")
		}
		for d := 1; d < r.cfg.ReentrantDepth; d++ {
			r.lock.Lock()
		}
		if n := r.lock.WriteHoldCount(); n != r.cfg.ReentrantDepth {
			r.violation(r.logger, "unexpected write hold count", zap.Int("holds", n))
		}
		r.hold()
		r.writes.Add(1)
		for d := 1; d < r.cfg.ReentrantDepth; d++ {
			r.lock.Unlock()
		}

		if r.cfg.DowngradeEvery > 0 && i%r.cfg.DowngradeEvery == 0 {
			r.downgrade()
			continue
		}
		r.writersIn.Add(-1)
		r.lock.Unlock()
	}
	return nil
}

// downgrade turns the single write hold of the caller into a read hold.
func (r *Runner) downgrade() {
	r.lock.RLock()
	r.writersIn.Add(-1)
	r.lock.Unlock()

	r.readersIn.Add(1)
	if r.writersIn.Load() != 0 {
		r.violation(r.logger, "writer entered during a downgraded read")
	}
	r.hold()
	r.downgrades.Add(1)
	r.readersIn.Add(-1)
	r.lock.RUnlock()
}

func (r *Runner) wlock(ctx context.Context, i int) (bool, error) {
	switch i % flavourCount {
	case flavourBlocking:
		r.lock.Lock()
		return true, nil
	case flavourContext:
		err := r.lock.LockContext(ctx)
		return err == nil, err
	case flavourTimed:
		return r.lock.TryLockFor(ctx, r.cfg.Timeout)
	case flavourTry:
		return r.lock.TryLock(), nil
	default:
		if r.lock.LockDeferred(ctx) {
			r.interrupted.Add(1)
		}
		return true, nil
	}
}

func (r *Runner) hold() {
	if r.cfg.HoldTime > 0 {
		time.Sleep(r.cfg.HoldTime)
	}
}
