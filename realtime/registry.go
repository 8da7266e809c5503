package realtime

import (
	"log/slog"
	"sync"

	"github.com/sergeeey/VeriFind--sub004/metric"
)

// Listener receives every frame dispatched for the routing key it
// subscribed to. Listeners run on the connection's read goroutine; a slow
// listener delays delivery to the ones registered after it.
type Listener func(Frame)

// subscription pairs a listener with the id its unsubscribe closure removes
type subscription struct {
	id uint64
	fn Listener
}

// Registry maintains the mapping from routing key to the listeners
// interested in it. A key with zero listeners is removed entirely, never
// retained as an empty set, so the registry cannot grow unbounded as long
// as every Subscribe's returned unsubscribe is eventually invoked.
type Registry struct {
	mu        sync.RWMutex
	listeners map[string][]subscription
	nextID    uint64

	logger  *slog.Logger
	metrics *metric.Metrics
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger used for listener failure reports
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistryMetrics wires dispatch and subscription metrics
func WithRegistryMetrics(m *metric.Metrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty subscription registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		listeners: make(map[string][]subscription),
		logger:    slog.Default().With(slog.String("component", "realtime-registry")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers fn for key and returns the closure that removes it.
// Listeners for one key are invoked in registration order. The returned
// unsubscribe is idempotent: second and later calls are no-ops.
func (r *Registry) Subscribe(key string, fn Listener) func() {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners[key] = append(r.listeners[key], subscription{id: id, fn: fn})
	r.recordSizeLocked()
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		subs, ok := r.listeners[key]
		if !ok {
			return
		}
		for i, sub := range subs {
			if sub.id == id {
				r.listeners[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(r.listeners[key]) == 0 {
			delete(r.listeners, key)
		}
		r.recordSizeLocked()
	}
}

// Dispatch delivers frame to every listener currently registered for key,
// in registration order. Each listener runs inside its own recover boundary
// so one failure never blocks the rest. A key with no listeners is a benign
// drop: events routinely arrive for queries the UI no longer displays.
func (r *Registry) Dispatch(key string, frame Frame) {
	r.mu.RLock()
	subs := r.listeners[key]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	r.mu.RUnlock()

	if len(snapshot) == 0 {
		if r.metrics != nil {
			r.metrics.RecordFrameDropped("no_listeners")
		}
		return
	}

	for _, sub := range snapshot {
		r.invoke(key, sub, frame)
	}
}

// invoke runs one listener inside a recover boundary
func (r *Registry) invoke(key string, sub subscription, frame Frame) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("listener panicked during dispatch",
				slog.String("query_id", key),
				slog.Any("panic", rec))
			if r.metrics != nil {
				r.metrics.RecordListenerFailure()
				r.metrics.RecordDispatch("panic")
			}
		}
	}()

	sub.fn(frame)
	if r.metrics != nil {
		r.metrics.RecordDispatch("ok")
	}
}

// Len returns the number of routing keys with at least one listener
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}

// Contains reports whether key has at least one listener
func (r *Registry) Contains(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.listeners[key]
	return ok
}

// Keys returns every routing key with at least one listener
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.listeners))
	for key := range r.listeners {
		keys = append(keys, key)
	}
	return keys
}

// recordSizeLocked updates the active subscription gauge; callers hold mu
func (r *Registry) recordSizeLocked() {
	if r.metrics != nil {
		r.metrics.RecordActiveSubscriptions(len(r.listeners))
	}
}
