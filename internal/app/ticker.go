package app

import "time"

// maxCatchUp bounds the ticks run for one frame after a stall, so a long
// pause does not turn into a burst of movement.
const maxCatchUp = 5

// Ticker converts elapsed wall time into a whole number of fixed-rate ticks.
type Ticker struct {
	step time.Duration
	acc  time.Duration
}

// NewTicker creates a ticker running rate ticks per second.
func NewTicker(rate int) *Ticker {
	if rate <= 0 {
		rate = 60
	}
	return &Ticker{step: time.Second / time.Duration(rate)}
}

// Step returns the duration of one tick.
func (t *Ticker) Step() time.Duration {
	return t.step
}

// Advance adds elapsed time and returns how many ticks are due.
func (t *Ticker) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	t.acc += elapsed

	n := int(t.acc / t.step)
	t.acc -= time.Duration(n) * t.step
	if n > maxCatchUp {
		n = maxCatchUp
		t.acc = 0
	}
	return n
}
