package scheduler

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/viant/rrsched/internal/logging"
	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/runtime/runqueue"
)

var sentinels = []struct {
	name string
	err  error
}{
	{"ErrInvalidStore", ErrInvalidStore},
	{"ErrStoreInitialized", ErrStoreInitialized},
	{"ErrTableOverflow", ErrTableOverflow},
	{"ErrInvalidID", ErrInvalidID},
	{"ErrNotRunning", ErrNotRunning},
	{"ErrUnknownOutcome", ErrUnknownOutcome},
	{"ErrSlotInUse", ErrSlotInUse},
	{"ErrFull", runqueue.ErrFull},
	{"ErrInvalidHandle", runqueue.ErrInvalidHandle},
	{"ErrDuplicate", runqueue.ErrDuplicate},
}

func describeError(err error) string {
	name := "unknown"
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			name = s.name
			break
		}
	}
	if IsFatal(err) {
		return "fatal " + name
	}
	return "error " + name
}

func formatOrder(ids []process.ID) string {
	if len(ids) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " ")
}

func parseTable(input string) process.Table {
	var table process.Table
	for _, field := range strings.Fields(input) {
		if field == "_" {
			table = append(table, process.None)
			continue
		}
		table = append(table, process.ID(field))
	}
	return table
}

// TestDataDriven runs the scripts under testdata. Commands:
//
//	build capacity=<n> [timeslice=<d>]   table on the input lines, "_" is empty
//	next | decide | order
//	notify pid=<id> outcome=<o> [elapsed=<d>]  pid "_" is no process
//	cycle n=<k> [outcome=<o>]            next+notify k times, prints selections
//	remove pid=<id>
//	add slot=<i> pid=<id>
func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		var (
			core  *Core
			store []process.Node
		)
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "build":
				var capacity int
				d.ScanArgs(t, "capacity", &capacity)
				opts := []Option{WithLogger(logging.Discard())}
				if d.HasArg("timeslice") {
					var raw string
					d.ScanArgs(t, "timeslice", &raw)
					slice, err := time.ParseDuration(raw)
					if err != nil {
						d.Fatalf(t, "timeslice: %v", err)
					}
					opts = append(opts, WithTimeslice(slice))
				}
				if store == nil || len(store) != capacity || d.HasArg("fresh") {
					store = make([]process.Node, capacity)
				}
				built, err := Build(store, parseTable(d.Input), opts...)
				if err != nil {
					return describeError(err)
				}
				core = built
				return formatOrder(core.Order())

			case "next":
				id, ok := core.Next()
				if !ok {
					return "idle"
				}
				return string(id)

			case "decide":
				decision := core.Decide()
				if decision.Idle() {
					return "idle"
				}
				return fmt.Sprintf("%s %s", decision.ID, decision.Timeslice)

			case "order":
				return formatOrder(core.Order())

			case "notify":
				var pid, outcome string
				d.ScanArgs(t, "pid", &pid)
				d.ScanArgs(t, "outcome", &outcome)
				var elapsed time.Duration
				if d.HasArg("elapsed") {
					var raw string
					d.ScanArgs(t, "elapsed", &raw)
					var err error
					if elapsed, err = time.ParseDuration(raw); err != nil {
						d.Fatalf(t, "elapsed: %v", err)
					}
				}
				if pid == "_" {
					pid = string(process.None)
				}
				if err := core.NotifyElapsed(process.ID(pid), process.Outcome(outcome), elapsed); err != nil {
					return describeError(err) + "\n" + formatOrder(core.Order())
				}
				return formatOrder(core.Order())

			case "cycle":
				var n int
				d.ScanArgs(t, "n", &n)
				outcome := string(process.Exhausted)
				if d.HasArg("outcome") {
					d.ScanArgs(t, "outcome", &outcome)
				}
				var selected []process.ID
				for i := 0; i < n; i++ {
					id, ok := core.Next()
					if !ok {
						selected = append(selected, "idle")
						continue
					}
					selected = append(selected, id)
					if err := core.Notify(id, process.Outcome(outcome)); err != nil {
						return describeError(err)
					}
				}
				return formatOrder(selected)

			case "remove":
				var pid string
				d.ScanArgs(t, "pid", &pid)
				return fmt.Sprintf("%v\n%s", core.Remove(process.ID(pid)), formatOrder(core.Order()))

			case "add":
				var slot int
				var pid string
				d.ScanArgs(t, "slot", &slot)
				d.ScanArgs(t, "pid", &pid)
				if err := core.Add(slot, process.ID(pid)); err != nil {
					return describeError(err) + "\n" + formatOrder(core.Order())
				}
				return formatOrder(core.Order())

			default:
				d.Fatalf(t, "unknown command %s", d.Cmd)
				return ""
			}
		})
	})
}
