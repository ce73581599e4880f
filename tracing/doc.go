// Package tracing is a thin wrapper around OpenTelemetry so that the kernel
// loop can open a span per dispatch without importing the SDK directly.
package tracing
