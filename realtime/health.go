package realtime

import "time"

// HealthStatus describes the current health of the realtime connection
type HealthStatus struct {
	Healthy             bool          `json:"healthy"`
	State               string        `json:"state"`
	Uptime              time.Duration `json:"uptime"`
	ReconnectAttempts   int           `json:"reconnect_attempts"`
	ActiveSubscriptions int           `json:"active_subscriptions"`
	FramesReceived      int64         `json:"frames_received"`
	FramesDropped       int64         `json:"frames_dropped"`
	LastActivity        time.Time     `json:"last_activity,omitempty"`
	LastError           string        `json:"last_error,omitempty"`
}
