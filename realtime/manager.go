package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sergeeey/VeriFind--sub004/config"
	"github.com/sergeeey/VeriFind--sub004/errors"
	"github.com/sergeeey/VeriFind--sub004/metric"
	"github.com/sergeeey/VeriFind--sub004/pkg/retry"
)

// ConnState is the lifecycle state of the push connection
type ConnState int32

const (
	// StateDisconnected means no transport exists and none is being opened
	StateDisconnected ConnState = iota
	// StateConnecting means a dial is in flight
	StateConnecting
	// StateOpen means the transport is established and frames flow
	StateOpen
	// StateClosing means teardown has begun and no reconnect will follow
	StateClosing
)

// String returns the state name
func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Manager owns the single push connection to the VeriFind backend: it dials,
// reads, reconnects with exponential backoff on loss, and feeds every inbound
// frame through ParseFrame into the subscription registry.
//
// A Manager is an explicit service object. Construct one with New, inject it
// into consumers, and tear it down with Stop; there is no package-level
// connection state.
type Manager struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *metric.Metrics
	registry *Registry
	backoff  retry.Config
	dialer   *websocket.Dialer

	// conn is owned by the connect loop; connMu also serializes writes,
	// which gorilla requires
	conn   *websocket.Conn
	connMu sync.Mutex

	state             atomic.Int32
	reconnectAttempts atomic.Int32

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
	started      atomic.Bool
	startTime    time.Time // set in New, immutable afterwards

	framesReceived atomic.Int64
	framesDropped  atomic.Int64
	lastActivity   atomic.Value // time.Time
	lastError      atomic.Value // string
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the structured logger used for all manager output
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics wires the manager, and the registry it owns, to the core
// metrics of the given registry
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.metrics = registry.CoreMetrics()
		}
	}
}

// WithDialer replaces the WebSocket dialer, mainly for TLS setup and tests
func WithDialer(dialer *websocket.Dialer) Option {
	return func(m *Manager) {
		if dialer != nil {
			m.dialer = dialer
		}
	}
}

// backoffPolicy starts from the standard reconnect policy and overrides the
// fields the configuration sets. Unset fields keep the policy's values, so a
// zero ReconnectConfig reconnects with the standard 1s-30s doubling delays.
func backoffPolicy(rc config.ReconnectConfig) retry.Config {
	policy := retry.Reconnect()
	if rc.InitialInterval > 0 {
		policy.InitialDelay = rc.InitialInterval
	}
	if rc.MaxInterval > 0 {
		policy.MaxDelay = rc.MaxInterval
	}
	if rc.Multiplier > 0 {
		policy.Multiplier = rc.Multiplier
	}
	return policy
}

// New creates a Manager for the given configuration. The configuration is
// validated; the connection is not opened until Start.
func New(cfg config.Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:       cfg,
		logger:    slog.Default().With(slog.String("component", "realtime-manager")),
		backoff:   backoffPolicy(cfg.Reconnect),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.dialer == nil {
		m.dialer = &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
			ReadBufferSize:   cfg.ReadBufferSize,
			WriteBufferSize:  cfg.WriteBufferSize,
		}
	}

	m.registry = NewRegistry(
		WithRegistryLogger(m.logger),
		WithRegistryMetrics(m.metrics),
	)

	return m, nil
}

// Start launches the connect loop. It returns ErrAlreadyStarted when the
// manager is already running; a manager cannot be restarted after Stop.
func (m *Manager) Start(ctx context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return errors.WrapInvalid(errors.ErrAlreadyStarted,
			"Manager", "Start", "start realtime manager")
	}

	m.logger.Info("starting realtime manager",
		slog.String("endpoint", m.cfg.Endpoint))

	go m.connectLoop(ctx)
	return nil
}

// Stop tears the connection down: it cancels any pending reconnect wait,
// closes the transport, and blocks until the connect loop exits or timeout
// elapses. The manager never reconnects after Stop.
func (m *Manager) Stop(timeout time.Duration) error {
	m.shutdownOnce.Do(func() {
		m.setState(StateClosing)
		close(m.shutdown)

		m.connMu.Lock()
		if m.conn != nil {
			deadline := time.Now().Add(time.Second)
			_ = m.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			_ = m.conn.Close()
		}
		m.connMu.Unlock()
	})

	if !m.started.Load() {
		m.setState(StateDisconnected)
		return nil
	}

	var stopErr error
	select {
	case <-m.done:
	case <-time.After(timeout):
		stopErr = errors.WrapTransient(errors.ErrConnectionTimeout,
			"Manager", "Stop", "wait for connect loop shutdown")
	}

	m.setState(StateDisconnected)
	return stopErr
}

// Subscribe registers fn for all frames routed to key and returns the
// idempotent unsubscribe closure
func (m *Manager) Subscribe(key string, fn Listener) func() {
	return m.registry.Subscribe(key, fn)
}

// Registry exposes the subscription registry, mainly for standalone use and
// tests
func (m *Manager) Registry() *Registry {
	return m.registry
}

// State returns the current connection state
func (m *Manager) State() ConnState {
	return ConnState(m.state.Load())
}

// Send marshals v and writes it to the transport. When the connection is not
// open the frame is dropped, the drop is logged and counted, and
// ErrNoConnection is returned; nothing is queued or retried.
func (m *Manager) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.WrapInvalid(err, "Manager", "Send", "marshal frame")
	}

	m.connMu.Lock()
	defer m.connMu.Unlock()

	if m.State() != StateOpen || m.conn == nil {
		m.logger.Warn("dropping outbound frame, connection not open",
			slog.String("state", m.State().String()))
		if m.metrics != nil {
			m.metrics.RecordDroppedSend()
		}
		return errors.WrapTransient(errors.ErrNoConnection,
			"Manager", "Send", "write frame")
	}

	if m.cfg.WriteTimeout > 0 {
		_ = m.conn.SetWriteDeadline(time.Now().Add(m.cfg.WriteTimeout))
	}
	if err := m.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		m.lastError.Store(err.Error())
		if m.metrics != nil {
			m.metrics.RecordError("realtime", "write_error")
		}
		return errors.WrapTransient(err, "Manager", "Send", "write frame")
	}

	if m.metrics != nil {
		m.metrics.RecordFrameSent()
	}
	return nil
}

// Health reports the manager's current health
func (m *Manager) Health() HealthStatus {
	state := m.State()

	status := HealthStatus{
		Healthy:             state == StateOpen,
		State:               state.String(),
		ReconnectAttempts:   int(m.reconnectAttempts.Load()),
		ActiveSubscriptions: m.registry.Len(),
		FramesReceived:      m.framesReceived.Load(),
		FramesDropped:       m.framesDropped.Load(),
	}
	if m.started.Load() {
		status.Uptime = time.Since(m.startTime)
	}
	if v, ok := m.lastActivity.Load().(time.Time); ok {
		status.LastActivity = v
	}
	if v, ok := m.lastError.Load().(string); ok {
		status.LastError = v
	}
	if m.metrics != nil {
		m.metrics.RecordHealthStatus("realtime", status.Healthy)
	}
	return status
}

// setState transitions the connection state and mirrors it into metrics
func (m *Manager) setState(s ConnState) {
	m.state.Store(int32(s))
	if m.metrics != nil {
		m.metrics.RecordConnectionState(int(s))
	}
}

// connectLoop dials, reads until disconnect, and reconnects with backoff.
// It is the sole owner of the conn field.
func (m *Manager) connectLoop(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			m.setState(StateDisconnected)
			return
		case <-m.shutdown:
			return
		default:
		}

		m.setState(StateConnecting)
		dialStart := time.Now()
		conn, _, err := m.dialer.DialContext(ctx, m.cfg.Endpoint, nil)
		if err != nil {
			m.lastError.Store(err.Error())
			m.logger.Warn("connect failed",
				slog.String("endpoint", m.cfg.Endpoint),
				slog.Int("attempt", int(m.reconnectAttempts.Load())),
				slog.String("error", err.Error()))
			if m.metrics != nil {
				m.metrics.RecordError("realtime", "connect_error")
			}
			if !m.waitReconnect(ctx) {
				m.setState(StateDisconnected)
				return
			}
			continue
		}

		if m.metrics != nil {
			m.metrics.RecordConnectDuration(time.Since(dialStart))
		}

		// A successful connection resets the backoff sequence
		m.reconnectAttempts.Store(0)

		m.connMu.Lock()
		m.conn = conn
		m.connMu.Unlock()
		m.setState(StateOpen)
		m.logger.Info("connected", slog.String("endpoint", m.cfg.Endpoint))

		if m.cfg.ResubscribeOnConnect {
			m.resubscribe()
		}

		m.readLoop(conn)

		m.connMu.Lock()
		m.conn = nil
		m.connMu.Unlock()
		_ = conn.Close()
		m.setState(StateDisconnected)

		if !m.waitReconnect(ctx) {
			return
		}
	}
}

// waitReconnect blocks for the backoff delay of the current attempt and
// reports whether the loop should dial again. Shutdown and context
// cancellation both supersede the pending wait, so no reconnect can fire
// after teardown.
func (m *Manager) waitReconnect(ctx context.Context) bool {
	if !m.cfg.Reconnect.Enabled {
		return false
	}

	attempt := int(m.reconnectAttempts.Load())
	if m.cfg.Reconnect.MaxRetries > 0 && attempt >= m.cfg.Reconnect.MaxRetries {
		m.logger.Error("giving up after max reconnect attempts",
			slog.Int("attempts", attempt))
		return false
	}

	delay := m.backoff.DelayFor(attempt)
	m.reconnectAttempts.Add(1)
	if m.metrics != nil {
		m.metrics.RecordReconnect()
	}
	m.logger.Info("reconnecting",
		slog.Int("attempt", attempt),
		slog.Duration("delay", delay))

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-m.shutdown:
		return false
	case <-ctx.Done():
		return false
	}
}

// readLoop consumes frames until the connection drops or shutdown begins
func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		select {
		case <-m.shutdown:
			return
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-m.shutdown:
				// Expected close during teardown
			default:
				m.lastError.Store(err.Error())
				m.logger.Warn("connection lost", slog.String("error", err.Error()))
				if m.metrics != nil {
					m.metrics.RecordError("realtime", "read_error")
				}
			}
			return
		}

		m.handleFrame(data)
	}
}

// handleFrame parses one raw frame and dispatches it. Malformed and
// unroutable frames are dropped without touching connection state.
func (m *Manager) handleFrame(data []byte) {
	m.lastActivity.Store(time.Now())

	frame, err := ParseFrame(data)
	if err != nil {
		m.framesDropped.Add(1)
		m.logger.Warn("dropping malformed frame", slog.String("error", err.Error()))
		if m.metrics != nil {
			m.metrics.RecordFrameDropped("parse_error")
		}
		return
	}

	m.framesReceived.Add(1)
	if m.metrics != nil {
		m.metrics.RecordFrameReceived(frame.Type)
	}

	if !frame.Routable() {
		// Connection-wide broadcast, nothing to fan out to
		if m.metrics != nil {
			m.metrics.RecordFrameDropped("unroutable")
		}
		m.logger.Debug("frame without routing key", slog.String("type", frame.Type))
		return
	}

	m.registry.Dispatch(frame.QueryID, frame)
}

// resubscribe re-announces every active routing key so the backend pushes
// current status for queries that progressed while the client was offline
func (m *Manager) resubscribe() {
	for _, key := range m.registry.Keys() {
		req := subscribeRequest{
			Type:    "subscribe",
			ID:      uuid.NewString(),
			QueryID: key,
		}
		if err := m.Send(req); err != nil {
			m.logger.Warn("resubscribe failed",
				slog.String("query_id", key),
				slog.String("error", err.Error()))
		}
	}
}
