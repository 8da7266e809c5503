// Package verifind provides the realtime subscription layer used by the
// VeriFind dashboard client.
//
// The module owns a single long-lived WebSocket connection to the VeriFind
// backend, fans inbound events out to any number of logical subscribers keyed
// by query ID, recovers from connection loss with exponential backoff, and
// normalizes the backend's loosely-typed progress vocabulary into a fixed
// client-side state model.
//
// # Architecture
//
// Four collaborating pieces, all in package realtime:
//
//   - Normalize: pure translation from raw backend status payloads to the
//     canonical QueryStatus record
//   - ParseFrame: decodes one raw transport frame into a typed Frame and
//     extracts its routing key
//   - Registry: routing key -> listener fan-out with explicit unsubscribe
//   - Manager: WebSocket lifecycle, reconnection, send, and the inbound
//     ParseFrame -> Dispatch pipeline
//
// Supporting packages follow the same conventions as the rest of the VeriFind
// services: errors (classified error handling), pkg/retry (exponential
// backoff), metric (Prometheus registry), config (layer configuration).
//
// # Usage
//
//	cfg := config.DefaultConfig()
//	cfg.Endpoint = "wss://api.verifind.dev/ws"
//
//	mgr, err := realtime.New(cfg, realtime.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := mgr.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer mgr.Stop(5 * time.Second)
//
//	unsubscribe := mgr.Subscribe("query-123", func(f realtime.Frame) {
//		status := realtime.NormalizeFrame(f, realtime.StatePending)
//		render(status)
//	})
//	defer unsubscribe()
package verifind
