package process

// Outcome represents how a dispatched process stopped executing
type Outcome string

const (
	// Exhausted means the process used up its timeslice.
	Exhausted Outcome = "exhausted"
	// Yielded means the process gave up the CPU before its timeslice ended.
	Yielded Outcome = "yielded"
	// Faulted means the process can no longer run.
	Faulted Outcome = "faulted"
	// Preempted means the kernel interrupted the process for its own work;
	// the process keeps its place and the rest of its timeslice.
	Preempted Outcome = "preempted"
)

// IsValid reports whether o is a known outcome
func (o Outcome) IsValid() bool {
	switch o {
	case Exhausted, Yielded, Faulted, Preempted:
		return true
	}
	return false
}

// Requeues reports whether the process stays runnable after this outcome.
func (o Outcome) Requeues() bool {
	return o != Faulted
}
