// Package runqueue implements a circular, doubly linked run queue laid over a
// fixed arena of process nodes.
//
// The arena is a caller-owned []process.Node; the queue never grows, shrinks
// or compacts it. Links are arena indices, so unlinking and relinking a node
// is O(1) and identifier lookup is a walk of at most Len() nodes.
//
// A Queue is not safe for concurrent use.
package runqueue
