package ports

import "time"

// Clock is the time source of commands; tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns time.Now in loc.
func SystemClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time {
		return time.Now().In(loc)
	})
}
