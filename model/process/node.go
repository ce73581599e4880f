package process

// Handle is the index of a node within its arena.
type Handle int32

// NilHandle terminates a link.
const NilHandle Handle = -1

// Node is a scheduling record living in a fixed arena. Links are arena
// indices rather than pointers so that a node can be unlinked and relinked
// in O(1) without leaving the arena.
//
// The zero Node is an uninitialized slot.
type Node struct {
	id          ID
	prev        Handle
	next        Handle
	linked      bool
	initialized bool
}

// NewNode constructs a detached node for id.
func NewNode(id ID) Node {
	return Node{
		id:          id,
		prev:        NilHandle,
		next:        NilHandle,
		initialized: true,
	}
}

// ID returns the process identity bound to the node
func (n *Node) ID() ID { return n.id }

// Initialized reports whether the slot holds a constructed node.
func (n *Node) Initialized() bool { return n.initialized }

// Linked reports whether the node is currently part of a run queue.
func (n *Node) Linked() bool { return n.linked }

// Prev returns the handle of the preceding node, NilHandle when detached.
func (n *Node) Prev() Handle { return n.prev }

// Next returns the handle of the following node, NilHandle when detached.
func (n *Node) Next() Handle { return n.next }

// Link sets the node neighbours and marks it linked.
func (n *Node) Link(prev, next Handle) {
	n.prev = prev
	n.next = next
	n.linked = true
}

// SetPrev updates the preceding link.
func (n *Node) SetPrev(h Handle) { n.prev = h }

// SetNext updates the following link.
func (n *Node) SetNext(h Handle) { n.next = h }

// Unlink detaches the node; identity and initialization are kept.
func (n *Node) Unlink() {
	n.prev = NilHandle
	n.next = NilHandle
	n.linked = false
}
