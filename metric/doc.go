// Package metric provides Prometheus-based metrics collection and an HTTP
// server for monitoring the VeriFind realtime layer.
//
// The package offers a centralized metrics registry managing both core
// realtime metrics (connection state, reconnects, frame and dispatch counts)
// and custom service-specific metrics. It includes an HTTP server exposing
// metrics in Prometheus format.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: realtime-layer metrics automatically registered (Metrics type)
//  2. Service Registry: extensible registration for service-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: metrics endpoint with a health check (Server type)
//
// # Basic Usage
//
// Setting up metrics collection and the HTTP server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Fatal(err)
//	    }
//	}()
//	defer server.Stop()
//
// Recording core metrics:
//
//	registry.CoreMetrics().RecordReconnect()
//	registry.CoreMetrics().RecordFrameReceived("status")
package metric
