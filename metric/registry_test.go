package metric

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gathered(t *testing.T, registry *MetricsRegistry, name string) bool {
	t.Helper()
	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	for _, mf := range metricFamilies {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.NotNil(t, registry.CoreMetrics())
}

func TestMetricsRegistry_CoreMetricsRegistered(t *testing.T) {
	registry := NewMetricsRegistry()

	registry.CoreMetrics().RecordConnectionState(2)
	registry.CoreMetrics().RecordReconnect()
	registry.CoreMetrics().RecordFrameReceived("status")
	registry.CoreMetrics().RecordFrameDropped("parse_error")
	registry.CoreMetrics().RecordDispatch("ok")
	registry.CoreMetrics().RecordActiveSubscriptions(3)

	assert.True(t, gathered(t, registry, "verifind_realtime_connection_state"))
	assert.True(t, gathered(t, registry, "verifind_realtime_reconnects_total"))
	assert.True(t, gathered(t, registry, "verifind_realtime_frames_received_total"))
	assert.True(t, gathered(t, registry, "verifind_realtime_frames_dropped_total"))
	assert.True(t, gathered(t, registry, "verifind_realtime_dispatches_total"))
	assert.True(t, gathered(t, registry, "verifind_realtime_active_subscriptions"))
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCounter("test-service", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()

	assert.True(t, gathered(t, registry, "test_counter"),
		"Counter should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterGauge(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "test_gauge",
		Help: "A test gauge",
	})

	err := registry.RegisterGauge("test-service", "test_gauge", gauge)
	require.NoError(t, err)

	gauge.Set(42.0)

	assert.True(t, gathered(t, registry, "test_gauge"),
		"Gauge should be registered in Prometheus registry")
}

func TestMetricsRegistry_RegisterHistogram(t *testing.T) {
	registry := NewMetricsRegistry()

	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "test_histogram",
		Help:    "A test histogram",
		Buckets: prometheus.DefBuckets,
	})

	err := registry.RegisterHistogram("test-service", "test_histogram", histogram)
	require.NoError(t, err)

	histogram.Observe(0.42)

	assert.True(t, gathered(t, registry, "test_histogram"),
		"Histogram should be registered in Prometheus registry")
}

func TestMetricsRegistry_DuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dup_counter",
		Help: "A counter registered twice",
	})

	require.NoError(t, registry.RegisterCounter("svc", "dup_counter", counter))

	err := registry.RegisterCounter("svc", "dup_counter", counter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMetricsRegistry_Unregister(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "removable_counter",
		Help: "A counter that gets removed",
	})

	require.NoError(t, registry.RegisterCounter("svc", "removable_counter", counter))
	assert.True(t, registry.Unregister("svc", "removable_counter"))
	assert.False(t, registry.Unregister("svc", "removable_counter"),
		"second unregister should report missing")

	// The name is free again after unregistering
	require.NoError(t, registry.RegisterCounter("svc", "removable_counter", counter))
}

func TestMetricsRegistry_ConcurrentRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Name: fmt.Sprintf("concurrent_counter_%d", n),
				Help: "Concurrently registered counter",
			})
			assert.NoError(t, registry.RegisterCounter("svc", fmt.Sprintf("c%d", n), counter))
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent registration deadlocked")
	}
}
