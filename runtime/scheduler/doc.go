// Package scheduler is the round-robin decision surface used by the kernel
// loop.
//
// A Core is built once at boot by Build from a caller-owned node store and a
// process table snapshot. The kernel loop then alternates Next (or Decide),
// running the selected process, and Notify. Rotation happens only on Notify:
// exhausted and yielded processes move to the tail, faulted ones leave the
// queue, preempted ones keep the head and the rest of their timeslice.
//
// A Core is not safe for concurrent use; it is meant to be driven from the
// single control point between process executions.
package scheduler
