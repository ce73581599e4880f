// Package progress keeps aggregated scheduling counters (dispatches, outcomes,
// lifecycle changes, idle waits) for one kernel run. The tracker can travel in
// a context so that any component on the loop path can apply a Delta without a
// global registry.
package progress
