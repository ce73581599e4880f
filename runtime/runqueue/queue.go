package runqueue

import (
	"github.com/viant/rrsched/model/process"
)

// Queue is a round-robin run queue over a fixed node arena. The head is the
// next node to run, the tail (head.prev) the most recently run one.
type Queue struct {
	nodes []process.Node
	head  process.Handle
	size  int
}

// New creates an empty queue over nodes. The queue takes ownership of the
// slice; its length is the queue capacity.
func New(nodes []process.Node) *Queue {
	return &Queue{
		nodes: nodes,
		head:  process.NilHandle,
	}
}

// Len returns the number of queued nodes
func (q *Queue) Len() int { return q.size }

// Cap returns the arena capacity
func (q *Queue) Cap() int { return len(q.nodes) }

// IsEmpty reports whether no node is queued
func (q *Queue) IsEmpty() bool { return q.size == 0 }

// Node returns a copy of the node stored at h.
func (q *Queue) Node(h process.Handle) (process.Node, bool) {
	if !q.inRange(h) {
		return process.Node{}, false
	}
	return q.nodes[h], true
}

// Head returns the handle of the node that runs next.
func (q *Queue) Head() (process.Handle, bool) {
	if q.size == 0 {
		return process.NilHandle, false
	}
	return q.head, true
}

// HeadID returns the identity of the head node, or process.None when empty.
func (q *Queue) HeadID() process.ID {
	if q.size == 0 {
		return process.None
	}
	return q.nodes[q.head].ID()
}

// Lookup returns the handle of the queued node bound to id.
func (q *Queue) Lookup(id process.ID) (process.Handle, bool) {
	h := q.head
	for i := 0; i < q.size; i++ {
		if q.nodes[h].ID() == id {
			return h, true
		}
		h = q.nodes[h].Next()
	}
	return process.NilHandle, false
}

// Contains reports whether id is queued.
func (q *Queue) Contains(id process.ID) bool {
	_, ok := q.Lookup(id)
	return ok
}

// PushTail appends the node at h behind the current tail.
func (q *Queue) PushTail(h process.Handle) error {
	if err := q.checkPush(h); err != nil {
		return err
	}
	q.link(h)
	return nil
}

// PushHead inserts the node at h in front of the current head.
func (q *Queue) PushHead(h process.Handle) error {
	if err := q.checkPush(h); err != nil {
		return err
	}
	q.link(h)
	q.head = h
	return nil
}

// PopHead unlinks and returns the head node handle.
func (q *Queue) PopHead() (process.Handle, bool) {
	if q.size == 0 {
		return process.NilHandle, false
	}
	h := q.head
	q.unlink(h)
	return h, true
}

// Rotate moves the head node to the tail. It is equivalent to PopHead
// followed by PushTail of the same handle.
func (q *Queue) Rotate() {
	if q.size < 2 {
		return
	}
	q.head = q.nodes[q.head].Next()
}

// Remove unlinks the node bound to id. It returns false when id is not
// queued, which is not an error: teardown may be reported more than once.
func (q *Queue) Remove(id process.ID) bool {
	h, ok := q.Lookup(id)
	if !ok {
		return false
	}
	q.unlink(h)
	return true
}

// IDs returns the queued identities in run order, head first.
func (q *Queue) IDs() []process.ID {
	ret := make([]process.ID, 0, q.size)
	h := q.head
	for i := 0; i < q.size; i++ {
		ret = append(ret, q.nodes[h].ID())
		h = q.nodes[h].Next()
	}
	return ret
}

func (q *Queue) inRange(h process.Handle) bool {
	return h >= 0 && int(h) < len(q.nodes)
}

func (q *Queue) checkPush(h process.Handle) error {
	if !q.inRange(h) {
		return fault(ErrInvalidHandle, "push %d (capacity %d)", h, len(q.nodes))
	}
	node := &q.nodes[h]
	if !node.Initialized() {
		return fault(ErrUninitialized, "push %d", h)
	}
	if node.Linked() {
		return fault(ErrLinked, "push %d (%s)", h, node.ID())
	}
	if q.size >= len(q.nodes) {
		return fault(ErrFull, "push %d (%s): %d/%d", h, node.ID(), q.size, len(q.nodes))
	}
	if other, ok := q.Lookup(node.ID()); ok {
		return fault(ErrDuplicate, "push %d (%s): queued at %d", h, node.ID(), other)
	}
	return nil
}

// link places h at the tail position.
func (q *Queue) link(h process.Handle) {
	node := &q.nodes[h]
	if q.size == 0 {
		node.Link(h, h)
		q.head = h
		q.size = 1
		return
	}
	tail := q.nodes[q.head].Prev()
	node.Link(tail, q.head)
	q.nodes[tail].SetNext(h)
	q.nodes[q.head].SetPrev(h)
	q.size++
}

func (q *Queue) unlink(h process.Handle) {
	node := &q.nodes[h]
	if q.size == 1 {
		q.head = process.NilHandle
	} else {
		prev, next := node.Prev(), node.Next()
		q.nodes[prev].SetNext(next)
		q.nodes[next].SetPrev(prev)
		if q.head == h {
			q.head = next
		}
	}
	node.Unlink()
	q.size--
}
