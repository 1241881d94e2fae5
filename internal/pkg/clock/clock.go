// Package clock hands usecases the current time, so event timestamps can be
// pinned in tests.
package clock

import "time"

type Clocker interface {
	Now() time.Time
}

// System reads the wall clock, always in UTC.
type System struct{}

func New() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
