//go:build !solution

package rwlock

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCanceled is returned when the context of a cancellable acquisition
	// is done before the lock becomes available. The request is fully
	// retracted by then.
	ErrCanceled = errors.New("rwlock: acquisition canceled")

	// ErrNotHeld is the panic value of a release of a role the caller
	// does not hold, when the lock was created WithStrictRelease.
	ErrNotHeld = errors.New("rwlock: release of a lock that is not held")

	// ErrInvalidOwner is the panic value of Handle(0).
	ErrInvalidOwner = errors.New("rwlock: owner id must not be zero")
)

func canceledError(ctx context.Context, mode Mode) error {
	return fmt.Errorf("%w: %s: %w", ErrCanceled, mode, context.Cause(ctx))
}
