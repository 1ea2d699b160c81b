package resilience

import "time"

// CircuitBreakerConfig tunes the breaker guarding an outbound dependency such as the NATS feed.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 10 * time.Second
	defaultHalfOpenMaxReq   = 1
)

// normalized fills unset or invalid fields; Enabled is left as given.
func (c CircuitBreakerConfig) normalized() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}
