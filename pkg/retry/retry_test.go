package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayFor_Sequence(t *testing.T) {
	cfg := Reconnect()

	// Doubling from 1s, capped at 30s: the counter itself never caps.
	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for attempt, want := range expected {
		assert.Equal(t, want, cfg.DelayFor(attempt), "attempt %d", attempt)
	}
}

func TestDelayFor_NegativeAttempt(t *testing.T) {
	cfg := Reconnect()
	assert.Equal(t, 1*time.Second, cfg.DelayFor(-1))
}

func TestDelayFor_HugeAttemptSaturates(t *testing.T) {
	cfg := Reconnect()
	assert.Equal(t, 30*time.Second, cfg.DelayFor(1000))
}

func TestDelayFor_ZeroConfigMatchesReconnect(t *testing.T) {
	var cfg Config
	std := Reconnect()
	for attempt := 0; attempt < 10; attempt++ {
		assert.Equal(t, std.DelayFor(attempt), cfg.DelayFor(attempt), "attempt %d", attempt)
	}
}

func TestDelayFor_PartialOverride(t *testing.T) {
	cfg := Config{InitialDelay: 10 * time.Millisecond}

	// Explicit initial delay, standard ceiling and multiplier
	assert.Equal(t, 10*time.Millisecond, cfg.DelayFor(0))
	assert.Equal(t, 20*time.Millisecond, cfg.DelayFor(1))
	assert.Equal(t, 30*time.Second, cfg.DelayFor(100))
}

func TestDelayFor_MaxDelayCapsEarly(t *testing.T) {
	cfg := Config{
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     25 * time.Millisecond,
		Multiplier:   10.0,
	}
	assert.Equal(t, 10*time.Millisecond, cfg.DelayFor(0))
	assert.Equal(t, 25*time.Millisecond, cfg.DelayFor(1))
	assert.Equal(t, 25*time.Millisecond, cfg.DelayFor(2))
}

func TestReconnectConfig(t *testing.T) {
	cfg := Reconnect()
	assert.Equal(t, 1*time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Equal(t, 2.0, cfg.Multiplier)
}
