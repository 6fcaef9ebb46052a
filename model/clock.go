package model

import "time"

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// SystemClock returns the system time in UTC
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type TickerWrapper interface {
	C() <-chan time.Time
	Stop()
}

type TimeTicker struct {
	ticker *time.Ticker
}

func NewTimeTicker(d time.Duration) *TimeTicker {
	return &TimeTicker{
		ticker: time.NewTicker(d),
	}
}

func (t *TimeTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *TimeTicker) Stop() {
	t.ticker.Stop()
}
