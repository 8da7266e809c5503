// Package retry provides exponential backoff for the realtime layer's
// connection recovery.
//
// # Overview
//
// The package computes backoff delays; it does not sleep or run callbacks.
// The connection loop owns its own wait so shutdown and context cancellation
// can supersede a pending delay.
//
// # Usage
//
// Driving a reconnect loop:
//
//	cfg := retry.Reconnect()
//	delay := cfg.DelayFor(attempt) // 1s, 2s, 4s, ..., capped at 30s
//
// Reconnect() is the standard push-connection policy; a Config with explicit
// fields overrides it per field, and the zero value is equivalent to it.
package retry
