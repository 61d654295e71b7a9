//go:build !solution

package rwlock

import (
	"bytes"
	"runtime"
	"strconv"
)

// OwnerID identifies the holder of a lock role.
// The zero value means "nobody".
type OwnerID uint64

var goroutinePrefix = []byte("goroutine ")

// currentOwner returns the id of the calling goroutine.
func currentOwner() OwnerID {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Первая строка стека: "goroutine 42 [running]:"
	b := bytes.TrimPrefix(buf[:n], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("rwlock: cannot parse goroutine id: " + err.Error())
	}
	return OwnerID(id)
}
