package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sergeeey/VeriFind--sub004/errors"
)

// Config represents the realtime layer configuration
type Config struct {
	// Endpoint is the push-connection URL (ws:// or wss://)
	Endpoint string `json:"endpoint"`

	// HandshakeTimeout bounds the WebSocket dial handshake
	HandshakeTimeout time.Duration `json:"handshake_timeout"`

	// WriteTimeout bounds each outbound frame write
	WriteTimeout time.Duration `json:"write_timeout"`

	// Reconnect configures connection-loss recovery
	Reconnect ReconnectConfig `json:"reconnect"`

	// ResubscribeOnConnect re-announces every active routing key after each
	// successful (re)connect so the backend can replay current status
	ResubscribeOnConnect bool `json:"resubscribe_on_connect"`

	// ReadBufferSize is the WebSocket read buffer size in bytes
	ReadBufferSize int `json:"read_buffer_size,omitempty"`

	// WriteBufferSize is the WebSocket write buffer size in bytes
	WriteBufferSize int `json:"write_buffer_size,omitempty"`
}

// ReconnectConfig holds reconnection configuration. Unset interval and
// multiplier fields fall back to the standard 1s-30s doubling policy.
type ReconnectConfig struct {
	Enabled         bool          `json:"enabled"`
	MaxRetries      int           `json:"max_retries"` // 0 = unlimited
	InitialInterval time.Duration `json:"initial_interval"`
	MaxInterval     time.Duration `json:"max_interval"`
	Multiplier      float64       `json:"multiplier"`
}

// DefaultConfig returns the default realtime configuration
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout:     45 * time.Second,
		WriteTimeout:         10 * time.Second,
		ResubscribeOnConnect: true,
		ReadBufferSize:       4096,
		WriteBufferSize:      4096,
		Reconnect: ReconnectConfig{
			Enabled:         true,
			MaxRetries:      0, // retry forever
			InitialInterval: 1 * time.Second,
			MaxInterval:     30 * time.Second,
			Multiplier:      2.0,
		},
	}
}

// Validate checks the configuration for internal consistency
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.WrapFatal(errors.ErrMissingConfig,
			"Config", "Validate", "endpoint is required")
	}
	if err := validateSchema(c); err != nil {
		return err
	}
	if c.Reconnect.MaxInterval > 0 && c.Reconnect.MaxInterval < c.Reconnect.InitialInterval {
		return errors.WrapFatal(errors.ErrInvalidConfig,
			"Config", "Validate", "reconnect.max_interval must be >= initial_interval")
	}
	if c.Reconnect.Multiplier != 0 && c.Reconnect.Multiplier < 1.0 {
		return errors.WrapFatal(errors.ErrInvalidConfig,
			"Config", "Validate", "reconnect.multiplier must be >= 1.0")
	}
	return nil
}

// LoadFromFile loads configuration from a JSON file, applies environment
// overrides, and validates the result
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapInvalid(err, "config", "LoadFromFile", "parse config")
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if val := os.Getenv("VERIFIND_REALTIME_ENDPOINT"); val != "" {
		c.Endpoint = val
	}
	if val := os.Getenv("VERIFIND_REALTIME_RECONNECT_ENABLED"); val != "" {
		c.Reconnect.Enabled = val == "true" || val == "1"
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("config marshal error: %v", err)
	}
	return string(data)
}
