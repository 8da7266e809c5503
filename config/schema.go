package config

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sergeeey/VeriFind--sub004/errors"
)

// configSchema is the JSON Schema the marshalled configuration must satisfy.
// Durations marshal as integer nanoseconds.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["endpoint", "reconnect"],
  "properties": {
    "endpoint": {
      "type": "string",
      "pattern": "^wss?://"
    },
    "handshake_timeout": {
      "type": "integer",
      "minimum": 0
    },
    "write_timeout": {
      "type": "integer",
      "minimum": 0
    },
    "resubscribe_on_connect": {
      "type": "boolean"
    },
    "read_buffer_size": {
      "type": "integer",
      "minimum": 0
    },
    "write_buffer_size": {
      "type": "integer",
      "minimum": 0
    },
    "reconnect": {
      "type": "object",
      "properties": {
        "enabled": {"type": "boolean"},
        "max_retries": {"type": "integer", "minimum": 0},
        "initial_interval": {"type": "integer", "minimum": 0},
        "max_interval": {"type": "integer", "minimum": 0},
        "multiplier": {"type": "number", "minimum": 0}
      }
    }
  }
}`

// validateSchema validates the configuration against the embedded JSON Schema
func validateSchema(c *Config) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.WrapFatal(err, "Config", "validateSchema", "marshal config for validation")
	}

	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.WrapFatal(err, "Config", "validateSchema", "run schema validation")
	}

	if !result.Valid() {
		errMsg := "schema validation failed:"
		for _, desc := range result.Errors() {
			errMsg += fmt.Sprintf(" %s: %s;", desc.Field(), desc.Description())
		}
		return errors.WrapFatal(fmt.Errorf("%s", errMsg),
			"Config", "validateSchema", "validate config document")
	}

	return nil
}
