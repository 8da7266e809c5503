// Package errors provides standardized error handling patterns for the
// VeriFind realtime layer.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// This classification enables intelligent error handling throughout the
// realtime layer, allowing the connection manager to make informed decisions
// about reconnects and graceful degradation without hardcoded error string
// matching.
//
// # Error Classification
//
// Errors are classified based on their type or content:
//
//   - Transient: network timeouts, connection loss, temporary unavailability (retry recommended)
//   - Invalid: malformed frames, validation failures (do not retry)
//   - Fatal: bad configuration, unrecoverable states (stop processing)
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for common conditions:
//
//	if !connected {
//	    return errors.ErrNoConnection
//	}
//
// Wrap errors with context for debugging:
//
//	if err := json.Unmarshal(data, &frame); err != nil {
//	    return errors.WrapInvalid(err, "router", "ParseFrame", "unmarshal frame")
//	}
//
// Check classification for retry logic:
//
//	if errors.IsTransient(err) {
//	    // schedule reconnect
//	}
package errors
