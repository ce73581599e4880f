// Package kernel provides the reference kernel main loop driving a
// scheduler.Core: decide, dispatch under a timeslice deadline, report the
// outcome, repeat. An empty run queue parks the loop until a process is
// loaded, the idle interval elapses or the context ends.
//
// Only the loop goroutine touches the scheduler. Load and Terminate may be
// called from any goroutine; their requests are applied at the next boundary
// between two executions, never while a process runs.
package kernel
