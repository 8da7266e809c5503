package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/sergeeey/VeriFind--sub004/errors"
)

// ParseFrame decodes one raw transport frame into a typed Frame. The error
// return is always an invalid-classified error, never a panic: a malformed
// frame is the caller's cue to log and drop, not a fatal condition.
//
// A frame that parses but lacks a routing key is a valid result; callers
// check Frame.Routable before dispatching.
func ParseFrame(data []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return Frame{}, errors.WrapInvalid(err, "router", "ParseFrame", "unmarshal frame")
	}

	if frame.Type == "" {
		return Frame{}, errors.WrapInvalid(
			fmt.Errorf("missing message type"),
			"router", "ParseFrame", "validate frame")
	}

	return frame, nil
}
