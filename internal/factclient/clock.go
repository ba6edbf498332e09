package factclient

import "time"

// Clock schedules one-shot callbacks. It exists so tests can drive delayed
// fetches with simulated time.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

// systemClock is the production Clock backed by time.AfterFunc.
type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
