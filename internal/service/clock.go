package service

import "time"

// Clock is the time source injected into the aggregator and the ledger so
// tests can pin "now" instead of reading the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock time source used in production.
func SystemClock() Clock { return systemClock{} }
