package metric

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServesMetricsAndHealth(t *testing.T) {
	registry := NewMetricsRegistry()
	registry.CoreMetrics().RecordReconnect()
	registry.CoreMetrics().RecordFrameReceived("status")

	srv := NewServer(0, "/metrics", registry)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(srv.Address())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "metrics endpoint never came up")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "verifind_realtime_reconnects_total")
	assert.Contains(t, string(body), "verifind_realtime_frames_received_total")

	base := strings.TrimSuffix(srv.Address(), "/metrics")
	health, err := http.Get(base + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	// A second Start on a running server is rejected
	require.Error(t, srv.Start())

	require.NoError(t, srv.Stop())
	require.NoError(t, <-errCh)
}

func TestServer_NilRegistry(t *testing.T) {
	srv := NewServer(0, "", nil)
	require.Error(t, srv.Start())
}
