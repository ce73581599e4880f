// Package rrsched provides the round-robin run-queue core of a single-core
// kernel together with a reference kernel loop.
//
// The scheduling records live in a caller-sized node store that is
// initialized once at boot; nothing is allocated on the scheduling path.
// End-users typically interact with the module via the Service façade:
//
//	cfg, _ := rrsched.LoadConfig(ctx, "rrsched.yaml")
//	srv, _ := rrsched.New(cfg, process.Table{"init", "", "shell"}, dispatcher)
//	err := srv.Run(ctx)
//
// Lower level building blocks:
//
//   - model/process     – process identity and scheduling node
//   - runtime/runqueue  – circular run queue over the node store
//   - runtime/scheduler – decision surface and static initializer
//   - runtime/kernel    – reference kernel main loop
package rrsched
