// Package clock is the kernel loop time source; override NowFunc in tests for
// determinism.
package clock

import "time"

// NowFunc returns current time.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Since returns the time elapsed since t according to NowFunc.
func Since(t time.Time) time.Duration { return NowFunc().Sub(t) }
