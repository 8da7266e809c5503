// Package config provides configuration for the VeriFind realtime layer.
//
// Configuration is a single JSON document with environment overrides. The
// layer needs very little: the push-connection endpoint, WebSocket tuning
// knobs, and the reconnection policy.
//
// # Loading
//
//	cfg, err := config.LoadFromFile("realtime.json")
//
// or build it in code:
//
//	cfg := config.DefaultConfig()
//	cfg.Endpoint = "wss://api.verifind.dev/ws"
//	if err := cfg.Validate(); err != nil { ... }
//
// # Environment Overrides
//
//   - VERIFIND_REALTIME_ENDPOINT: replaces the endpoint URL
//   - VERIFIND_REALTIME_RECONNECT_ENABLED: "true"/"1" or anything else for off
//
// # Validation
//
// Validate runs two passes: a JSON Schema check of the marshalled document
// (field types, endpoint URL scheme, non-negative durations) followed by
// semantic checks the schema cannot express (interval ordering, multiplier
// bounds). Validation failures are fatal-classified errors.
package config
