package scheduler

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/runtime/runqueue"
)

// Build constructs a Core over store, seeding it with one node per occupied
// table entry in table order. Node slot i belongs to table slot i, so len(store)
// is the maximum process count and table may not be longer than store.
//
// Build runs once at boot. The store must hold only zero nodes; passing a store
// that was already used is rejected with ErrStoreInitialized. On failure the
// store is cleared and no Core is returned.
func Build(store []process.Node, table process.Table, opts ...Option) (*Core, error) {
	if len(store) == 0 {
		return nil, ErrInvalidStore
	}
	if len(table) > len(store) {
		return nil, errors.Wrapf(ErrTableOverflow, "%d entries, capacity %d", len(table), len(store))
	}
	for i := range store {
		if store[i].Initialized() {
			return nil, errors.Wrapf(ErrStoreInitialized, "slot %d holds %s", i, store[i].ID())
		}
	}

	c := &Core{
		store:     store,
		queue:     runqueue.New(store),
		timeslice: DefaultTimeslice,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i, id := range table {
		if !id.IsValid() {
			continue
		}
		store[i] = process.NewNode(id)
		if err := c.queue.PushTail(process.Handle(i)); err != nil {
			clear(store)
			return nil, errors.Wrapf(err, "seed slot %d", i)
		}
	}
	c.logger.Info("scheduler ready",
		"processes", c.queue.Len(),
		"capacity", c.queue.Cap(),
		"timeslice", c.timeslice)
	return c, nil
}
