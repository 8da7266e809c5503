package realtime

// Inbound message types the backend emits. The router does not restrict the
// set; unknown types still parse and route so new backend messages reach
// listeners without a client release.
const (
	// MessageStatus carries a progress update for one query
	MessageStatus = "status"
	// MessageComplete marks a query finished
	MessageComplete = "complete"
	// MessageError carries a query-level failure
	MessageError = "error"
	// MessageSubscribed acknowledges a subscribe request
	MessageSubscribed = "subscribed"
)

// Frame is one parsed inbound transport frame. Status fields may sit at the
// frame's top level or nested under Data; both forms occur in the backend's
// vocabulary and NormalizeFrame merges them.
type Frame struct {
	Type    string     `json:"type"`
	QueryID string     `json:"query_id,omitempty"`
	Data    *RawStatus `json:"data,omitempty"`
	RawStatus
}

// Routable reports whether the frame carries a routing key. Frames without
// one are connection-wide broadcasts and are valid, just not dispatched.
func (f Frame) Routable() bool {
	return f.QueryID != ""
}

// subscribeRequest is the control frame sent to re-announce an active
// routing key after a (re)connect
type subscribeRequest struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	QueryID string `json:"query_id"`
}
