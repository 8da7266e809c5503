// Package retry provides the exponential backoff policy for the realtime layer
package retry

import "time"

// Config describes an exponential backoff sequence. The zero value behaves
// like Reconnect().
type Config struct {
	InitialDelay time.Duration // Delay before the first retry
	MaxDelay     time.Duration // Ceiling on the computed delay
	Multiplier   float64       // Backoff multiplier (typically 2.0)
}

// Reconnect returns the backoff policy used for push-connection recovery:
// 1s, 2s, 4s, 8s, 16s, 30s, 30s, ... The delays are exact; the connection
// loop applies DelayFor itself so its wait stays cancellable.
func Reconnect() Config {
	return Config{
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// DelayFor returns the backoff delay for the given zero-based attempt number:
// min(InitialDelay * Multiplier^attempt, MaxDelay). The attempt counter is
// never capped; only the resulting delay is.
func (cfg Config) DelayFor(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	policy := Reconnect()
	if cfg.InitialDelay > 0 {
		policy.InitialDelay = cfg.InitialDelay
	}
	if cfg.MaxDelay > 0 {
		policy.MaxDelay = cfg.MaxDelay
	}
	if cfg.Multiplier > 0 {
		policy.Multiplier = cfg.Multiplier
	}

	delay := policy.InitialDelay
	for i := 0; i < attempt; i++ {
		next := float64(delay) * policy.Multiplier
		// Overflow guard: a huge attempt count saturates at MaxDelay.
		if next >= float64(policy.MaxDelay) {
			return policy.MaxDelay
		}
		delay = time.Duration(next)
	}
	if delay > policy.MaxDelay {
		return policy.MaxDelay
	}
	return delay
}
