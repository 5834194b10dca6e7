package usecase

import "time"

// UTCClock is the production Clock.
type UTCClock struct{}

// Now returns the current UTC time.
func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}
