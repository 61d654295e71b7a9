//go:build !solution

package rwlock

import "container/list"

// writerQueue is the FIFO of writers waiting for ownership.
// Every waiting request keeps its own element, so a canceled request
// leaves the queue in O(1) from any position.
type writerQueue struct {
	list *list.List // элементы хранят OwnerID
}

func newWriterQueue() writerQueue {
	return writerQueue{list: list.New()}
}

func (q *writerQueue) push(owner OwnerID) *list.Element {
	return q.list.PushBack(owner)
}

func (q *writerQueue) remove(e *list.Element) {
	q.list.Remove(e)
}

func (q *writerQueue) isHead(e *list.Element) bool {
	return q.list.Front() == e
}

func (q *writerQueue) len() int {
	return q.list.Len()
}

func (q *writerQueue) contains(owner OwnerID) bool {
	for e := q.list.Front(); e != nil; e = e.Next() {
		if e.Value.(OwnerID) == owner {
			return true
		}
	}
	return false
}

// owners returns queued writers, head first.
func (q *writerQueue) owners() []OwnerID {
	res := make([]OwnerID, 0, q.list.Len())
	for e := q.list.Front(); e != nil; e = e.Next() {
		res = append(res, e.Value.(OwnerID))
	}
	return res
}
