package kernel

import (
	"context"
	"errors"

	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/service/event"
)

// ErrStopped is returned by lifecycle calls once Run has returned.
var ErrStopped = errors.New("kernel: loop stopped")

type reply struct {
	removed bool
	err     error
}

type request struct {
	kind  event.Type
	slot  int
	id    process.ID
	reply chan reply
}

// Load schedules a newly loaded process occupying table slot slot. It returns
// once the loop applied the request. A capacity violation is a fatal
// scheduler fault: it is returned here and also ends Run.
func (l *Loop) Load(ctx context.Context, slot int, id process.ID) error {
	r, err := l.submit(ctx, &request{kind: event.TypeLoad, slot: slot, id: id})
	if err != nil {
		return err
	}
	return r.err
}

// Terminate removes id from the run queue at the next boundary. It reports
// whether the process was still queued.
func (l *Loop) Terminate(ctx context.Context, id process.ID) (bool, error) {
	r, err := l.submit(ctx, &request{kind: event.TypeTerminate, id: id})
	if err != nil {
		return false, err
	}
	return r.removed, r.err
}

func (l *Loop) submit(ctx context.Context, req *request) (reply, error) {
	req.reply = make(chan reply, 1)
	select {
	case l.requests <- req:
	case <-ctx.Done():
		return reply{}, ctx.Err()
	case <-l.done:
		return reply{}, ErrStopped
	}
	select {
	case r := <-req.reply:
		return r, nil
	case <-ctx.Done():
		return reply{}, ctx.Err()
	case <-l.done:
		select {
		case r := <-req.reply:
			return r, nil
		default:
			return reply{}, ErrStopped
		}
	}
}

// drain applies every pending request without blocking.
func (l *Loop) drain(ctx context.Context) error {
	for {
		select {
		case req := <-l.requests:
			if err := l.apply(ctx, req); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}
