// Package process defines the scheduling records shared by the run queue and
// the scheduler: process identity, the process table snapshot consumed at boot,
// the arena node and the execution outcome reported by the kernel loop.
package process
