//go:build !solution

package rwlock

import (
	"container/list"
	"fmt"
)

// state is the data guarded by the lock monitor.
type state struct {
	writer      OwnerID
	writerHolds int
	readers     map[OwnerID]int
	queue       writerQueue
	waiting     int // вызовы, заблокированные в мониторе
}

func newState() state {
	return state{
		readers: make(map[OwnerID]int),
		queue:   newWriterQueue(),
	}
}

// canBecomeReader reports whether owner may take a read hold right now.
// A new reader never overtakes a queued writer; the current writer
// may always read (downgrade).
func (s *state) canBecomeReader(owner OwnerID) bool {
	if owner == s.writer {
		return true
	}
	return s.writer == 0 && s.queue.len() == 0
}

// canBecomeWriter reports whether the queued request req of owner
// may take write ownership right now.
func (s *state) canBecomeWriter(owner OwnerID, req *list.Element) bool {
	if owner == s.writer {
		return true
	}
	return s.writer == 0 && len(s.readers) == 0 && s.queue.isHead(req)
}

// isFree reports whether nobody holds or waits for the lock.
func (s *state) isFree() bool {
	return s.writer == 0 && len(s.readers) == 0 && s.queue.len() == 0
}

func (s *state) addReader(owner OwnerID) {
	s.readers[owner]++
}

// removeReader drops one read hold of owner.
// held is false if owner had no read hold at all.
func (s *state) removeReader(owner OwnerID) (held, drained bool) {
	cnt, ok := s.readers[owner]
	if !ok {
		return false, false
	}
	if cnt == 1 {
		delete(s.readers, owner)
	} else {
		s.readers[owner] = cnt - 1
	}
	return true, len(s.readers) == 0
}

func (s *state) grantWriter(owner OwnerID) {
	s.writer = owner
	s.writerHolds = 1
}

// removeWriterHold drops one write hold of owner.
// held is false if owner is not the writer.
func (s *state) removeWriterHold(owner OwnerID) (held, released bool) {
	if s.writer == 0 || s.writer != owner {
		return false, false
	}
	s.writerHolds--
	if s.writerHolds == 0 {
		s.writer = 0
		return true, true
	}
	return true, false
}

func (s *state) readHolds(owner OwnerID) int {
	return s.readers[owner]
}

func (s *state) writeHolds(owner OwnerID) int {
	if owner != 0 && owner == s.writer {
		return s.writerHolds
	}
	return 0
}

func (s *state) snapshot() Snapshot {
	readers := make(map[OwnerID]int, len(s.readers))
	for o, cnt := range s.readers {
		readers[o] = cnt
	}
	return Snapshot{
		Writer:        s.writer,
		WriterHolds:   s.writerHolds,
		Readers:       readers,
		QueuedWriters: s.queue.owners(),
		Waiting:       s.waiting,
	}
}

// Snapshot is a point-in-time copy of the lock state.
type Snapshot struct {
	Writer        OwnerID         `yaml:"writer"`
	WriterHolds   int             `yaml:"writer_holds"`
	Readers       map[OwnerID]int `yaml:"readers"`
	QueuedWriters []OwnerID       `yaml:"queued_writers"`
	// Waiting is the number of calls currently blocked inside the lock.
	Waiting int `yaml:"waiting"`
}

// Validate checks the structural invariants of the lock state.
func (s Snapshot) Validate() error {
	if (s.WriterHolds > 0) != (s.Writer != 0) {
		return fmt.Errorf("writer %d with %d holds", s.Writer, s.WriterHolds)
	}
	if s.WriterHolds < 0 {
		return fmt.Errorf("negative writer hold count %d", s.WriterHolds)
	}
	for o, cnt := range s.Readers {
		if cnt < 1 {
			return fmt.Errorf("reader %d has hold count %d", o, cnt)
		}
		if s.Writer != 0 && o != s.Writer {
			return fmt.Errorf("reader %d is active while %d writes", o, s.Writer)
		}
	}
	for _, o := range s.QueuedWriters {
		if o == s.Writer {
			return fmt.Errorf("writer %d is queued while owning the lock", o)
		}
	}
	return nil
}
