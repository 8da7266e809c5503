package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the core realtime-layer metrics (not listener-specific)
type Metrics struct {
	// Connection metrics
	ConnectionState prometheus.Gauge
	Reconnects      prometheus.Counter
	ConnectDuration prometheus.Histogram

	// Frame metrics
	FramesReceived *prometheus.CounterVec
	FramesDropped  *prometheus.CounterVec
	FramesSent     prometheus.Counter
	DroppedSends   prometheus.Counter

	// Dispatch metrics
	Dispatches          *prometheus.CounterVec
	ListenerFailures    prometheus.Counter
	ActiveSubscriptions prometheus.Gauge

	// Health metrics
	HealthCheckStatus *prometheus.GaugeVec
	ErrorsTotal       *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all core metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ConnectionState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "connection_state",
				Help:      "Connection state (0=disconnected, 1=connecting, 2=open, 3=closing)",
			},
		),

		Reconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "reconnects_total",
				Help:      "Total number of reconnection attempts",
			},
		),

		ConnectDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "connect_duration_seconds",
				Help:      "Time spent establishing the push connection",
				Buckets:   prometheus.DefBuckets,
			},
		),

		FramesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "frames_received_total",
				Help:      "Total inbound frames by message type",
			},
			[]string{"type"},
		),

		FramesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "frames_dropped_total",
				Help:      "Total inbound frames dropped by reason (parse_error, unroutable, no_listeners)",
			},
			[]string{"reason"},
		),

		FramesSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "frames_sent_total",
				Help:      "Total outbound frames written to the transport",
			},
		),

		DroppedSends: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "dropped_sends_total",
				Help:      "Total outbound frames dropped because the connection was not open",
			},
		),

		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "dispatches_total",
				Help:      "Total listener invocations by outcome (ok, panic)",
			},
			[]string{"outcome"},
		),

		ListenerFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "listener_failures_total",
				Help:      "Total listener callbacks that panicked during dispatch",
			},
		),

		ActiveSubscriptions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "verifind",
				Subsystem: "realtime",
				Name:      "active_subscriptions",
				Help:      "Number of routing keys with at least one listener",
			},
		),

		HealthCheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "verifind",
				Subsystem: "health",
				Name:      "status",
				Help:      "Health check status (0=unhealthy, 1=healthy)",
			},
			[]string{"service"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "verifind",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by service and type",
			},
			[]string{"service", "type"},
		),
	}
}

// RecordConnectionState updates the connection state gauge
func (c *Metrics) RecordConnectionState(state int) {
	c.ConnectionState.Set(float64(state))
}

// RecordReconnect increments the reconnect counter
func (c *Metrics) RecordReconnect() {
	c.Reconnects.Inc()
}

// RecordConnectDuration records how long a dial took
func (c *Metrics) RecordConnectDuration(d time.Duration) {
	c.ConnectDuration.Observe(d.Seconds())
}

// RecordFrameReceived increments the inbound frame counter
func (c *Metrics) RecordFrameReceived(messageType string) {
	c.FramesReceived.WithLabelValues(messageType).Inc()
}

// RecordFrameDropped increments the dropped frame counter
func (c *Metrics) RecordFrameDropped(reason string) {
	c.FramesDropped.WithLabelValues(reason).Inc()
}

// RecordDispatch increments the dispatch counter
func (c *Metrics) RecordDispatch(outcome string) {
	c.Dispatches.WithLabelValues(outcome).Inc()
}

// RecordListenerFailure increments the listener failure counter
func (c *Metrics) RecordListenerFailure() {
	c.ListenerFailures.Inc()
}

// RecordFrameSent increments the outbound frame counter
func (c *Metrics) RecordFrameSent() {
	c.FramesSent.Inc()
}

// RecordDroppedSend increments the dropped send counter
func (c *Metrics) RecordDroppedSend() {
	c.DroppedSends.Inc()
}

// RecordActiveSubscriptions updates the active subscription gauge
func (c *Metrics) RecordActiveSubscriptions(n int) {
	c.ActiveSubscriptions.Set(float64(n))
}

// RecordHealthStatus updates health check status
func (c *Metrics) RecordHealthStatus(service string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	c.HealthCheckStatus.WithLabelValues(service).Set(value)
}

// RecordError increments the error counter
func (c *Metrics) RecordError(service, errorType string) {
	c.ErrorsTotal.WithLabelValues(service, errorType).Inc()
}
