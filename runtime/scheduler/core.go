package scheduler

import (
	"log/slog"
	"time"

	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/runtime/runqueue"
)

// Decision is the scheduling answer for one kernel loop iteration. A zero ID
// means there is nothing to run and the loop may idle.
type Decision struct {
	ID        process.ID
	Timeslice time.Duration
}

// Idle reports whether the decision selects no process.
func (d Decision) Idle() bool {
	return !d.ID.IsValid()
}

// Core is a round-robin scheduler over a fixed node store.
type Core struct {
	store     []process.Node
	queue     *runqueue.Queue
	timeslice time.Duration
	// remaining is the budget left to the head after a kernel preemption;
	// it is meaningful only while resumed is set.
	remaining time.Duration
	resumed   bool
	logger    *slog.Logger
}

// Next returns the process that should run now, or false when the run queue is
// empty. Repeated calls without Notify return the same answer.
func (c *Core) Next() (process.ID, bool) {
	id := c.queue.HeadID()
	return id, id.IsValid()
}

// Decide returns Next together with the timeslice the process may use.
func (c *Core) Decide() Decision {
	id, ok := c.Next()
	if !ok {
		return Decision{}
	}
	return Decision{ID: id, Timeslice: c.budget()}
}

// Notify reports how the process last returned by Next stopped running.
func (c *Core) Notify(id process.ID, outcome process.Outcome) error {
	return c.NotifyElapsed(id, outcome, 0)
}

// NotifyElapsed is Notify with the time the process actually ran. Elapsed only
// matters for Preempted: the process keeps the head while its remaining budget
// is positive and is otherwise treated as Exhausted.
//
// An id that is not the head is a fatal fault, except for Faulted on an id
// that is no longer queued at all, which is accepted as a repeated teardown.
// On an empty run queue every other outcome is fatal. Negative elapsed counts
// as zero.
func (c *Core) NotifyElapsed(id process.ID, outcome process.Outcome, elapsed time.Duration) error {
	if !outcome.IsValid() {
		return c.fatal(fault(ErrUnknownOutcome, "notify %s: %q", id, outcome))
	}
	head := c.queue.HeadID()
	if outcome == process.Faulted && id != head && !c.queue.Contains(id) {
		c.logger.Debug("fault for unscheduled process ignored", "pid", id)
		return nil
	}
	if !id.IsValid() || id != head {
		return c.fatal(fault(ErrNotRunning, "notify %q (%s): head is %q", id, outcome, head))
	}
	if elapsed < 0 {
		elapsed = 0
	}

	switch outcome {
	case process.Preempted:
		budget := c.budget()
		if elapsed < budget {
			c.remaining = budget - elapsed
			c.resumed = true
			c.logger.Debug("process preempted", "pid", id, "remaining", c.remaining)
			return nil
		}
		c.rotate(id, process.Exhausted)
	case process.Exhausted, process.Yielded:
		c.rotate(id, outcome)
	case process.Faulted:
		c.queue.PopHead()
		c.resetBudget()
		c.logger.Debug("process dequeued", "pid", id, "outcome", outcome, "queued", c.queue.Len())
	}
	return nil
}

// Remove takes id out of the run queue, for teardown outside of a Faulted
// notification. It returns false when id was not queued.
func (c *Core) Remove(id process.ID) bool {
	wasHead := c.queue.HeadID() == id
	if !c.queue.Remove(id) {
		return false
	}
	if wasHead {
		c.resetBudget()
	}
	c.logger.Debug("process removed", "pid", id, "queued", c.queue.Len())
	return true
}

// Add schedules a newly loaded process occupying table slot slot. It follows
// the tail insertion contract of Build. A full queue, an out of range slot or
// a slot whose node is still queued is a fatal fault.
func (c *Core) Add(slot int, id process.ID) error {
	if !id.IsValid() {
		return ErrInvalidID
	}
	if c.queue.Len() >= c.queue.Cap() {
		return c.fatal(fault(runqueue.ErrFull, "add %s at slot %d: %d/%d", id, slot, c.queue.Len(), c.queue.Cap()))
	}
	if slot < 0 || slot >= len(c.store) {
		return c.fatal(fault(runqueue.ErrInvalidHandle, "add %s at slot %d (capacity %d)", id, slot, len(c.store)))
	}
	if current := &c.store[slot]; current.Linked() {
		return c.fatal(fault(ErrSlotInUse, "add %s at slot %d: held by %s", id, slot, current.ID()))
	}
	previous := c.store[slot]
	c.store[slot] = process.NewNode(id)
	if err := c.queue.PushTail(process.Handle(slot)); err != nil {
		c.store[slot] = previous
		return c.fatal(err)
	}
	c.logger.Debug("process added", "pid", id, "slot", slot, "queued", c.queue.Len())
	return nil
}

// Order returns the queued processes in run order, head first.
func (c *Core) Order() []process.ID {
	return c.queue.IDs()
}

// Len returns the number of runnable processes
func (c *Core) Len() int { return c.queue.Len() }

// Cap returns the maximum number of processes
func (c *Core) Cap() int { return c.queue.Cap() }

// Timeslice returns the configured quantum
func (c *Core) Timeslice() time.Duration { return c.timeslice }

func (c *Core) rotate(id process.ID, outcome process.Outcome) {
	c.queue.Rotate()
	c.resetBudget()
	c.logger.Debug("process rotated", "pid", id, "outcome", outcome, "next", c.queue.HeadID())
}

func (c *Core) budget() time.Duration {
	if c.resumed {
		return c.remaining
	}
	return c.timeslice
}

func (c *Core) resetBudget() {
	c.remaining = 0
	c.resumed = false
}

func (c *Core) fatal(err error) error {
	c.logger.Error("scheduler consistency fault", "error", err)
	return err
}
