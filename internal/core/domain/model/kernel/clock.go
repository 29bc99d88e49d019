package kernel

import "time"

// Clock abstracts the wall clock so that creation and submission timestamps
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// RealClock returns UTC wall-clock time truncated to microseconds, the
// precision both supported databases keep.
func RealClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Now().UTC().Truncate(time.Microsecond)
	})
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time {
		return t
	})
}
