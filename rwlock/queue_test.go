//go:build !change

package rwlock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterQueue(t *testing.T) {
	q := newWriterQueue()
	require.Zero(t, q.len())
	require.Empty(t, q.owners())

	a := q.push(1)
	b := q.push(2)
	c := q.push(3)
	require.True(t, q.isHead(a))
	require.False(t, q.isHead(b))
	require.Equal(t, []OwnerID{1, 2, 3}, q.owners())

	// отмена из середины очереди
	q.remove(b)
	require.Equal(t, []OwnerID{1, 3}, q.owners())
	require.False(t, q.contains(2))

	q.remove(a)
	require.True(t, q.isHead(c))
	require.True(t, q.contains(3))
	require.Equal(t, 1, q.len())
}
