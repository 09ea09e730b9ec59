package transport

import (
	"math"
	"time"
)

// Default reconnect timing.
const (
	DefaultBackoffBase  = 1000 * time.Millisecond
	DefaultBackoffRatio = 1.5
	DefaultMaxAttempts  = 5
)

// BackoffDelay returns the delay before reconnect attempt n (1-based):
// base * ratio^(n-1). No jitter is applied.
func BackoffDelay(base time.Duration, ratio float64, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(float64(base) * math.Pow(ratio, float64(attempt-1)))
}

// backoff tracks the reconnect attempt counter for one connection cycle.
type backoff struct {
	base    time.Duration
	ratio   float64
	max     int
	attempt int
}

func newBackoff(base time.Duration, ratio float64, max int) *backoff {
	return &backoff{base: base, ratio: ratio, max: max}
}

// Next reports whether another attempt is allowed and, if so, the delay
// to wait before it. The counter is incremented before the delay is
// computed.
func (b *backoff) Next() (time.Duration, bool) {
	if b.attempt >= b.max {
		return 0, false
	}
	b.attempt++
	return BackoffDelay(b.base, b.ratio, b.attempt), true
}

// Reset clears the attempt counter after a successful connect.
func (b *backoff) Reset() { b.attempt = 0 }
