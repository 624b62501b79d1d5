// Package clock provides a small clock abstraction so that schedule and
// billing logic never calls time.Now() directly, keeping date math
// deterministic in tests.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual system time. Use at application entry points.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns a fixed time. Use in tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}

// NewReal returns a Clock backed by the system time.
func NewReal() Clock {
	return RealClock{}
}

// NewFixed returns a Clock that always reports t.
func NewFixed(t time.Time) Clock {
	return FixedClock{T: t}
}
