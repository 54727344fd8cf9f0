package scheduling

import "time"

// Clock supplies the current time. All temporal rules read the clock
// instead of time.Now so they can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock backed Clock used in production.
func SystemClock() Clock { return systemClock{} }
