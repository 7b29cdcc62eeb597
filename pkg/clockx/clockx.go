package clockx

import "time"

// Clock supplies the current time. Token expiry decisions must go through an
// injected Clock so tests can pin time; reaching for time.Now directly in
// the auth engine is a bug.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// Offset shifts a base clock by a fixed duration. Useful for expiry tests
// that need "the same clock, later".
type Offset struct {
	Base Clock
	By   time.Duration
}

func (o Offset) Now() time.Time { return o.Base.Now().Add(o.By) }
