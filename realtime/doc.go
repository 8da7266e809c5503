// Package realtime implements the subscription and status-normalization
// layer of the VeriFind dashboard client.
//
// One Manager owns one long-lived WebSocket connection to the backend. Every
// inbound frame is parsed by ParseFrame and fanned out by the Registry to the
// listeners subscribed to the frame's query ID. Listeners typically hand the
// frame to NormalizeFrame to obtain the canonical QueryStatus the UI renders.
//
// # Connection recovery
//
// On dial failure or connection loss the Manager reconnects with exponential
// backoff: 1s, 2s, 4s, doubling up to a 30s ceiling, resetting after any
// successful connection. Teardown via Stop cancels a pending reconnect wait,
// so no dial can fire after the owning surface has gone away.
//
// # Delivery semantics
//
// Frames are dispatched in arrival order and, within one frame, in listener
// registration order. No ordering or delivery guarantee spans a reconnect:
// frames in flight at disconnect time are lost. To soften that gap the
// Manager re-announces every active query ID after each reconnect (see
// config.Config.ResubscribeOnConnect), prompting the backend to push current
// status. Outbound sends while disconnected are dropped, not queued; the
// caller gets ErrNoConnection and decides what to do.
//
// # Failure isolation
//
// A malformed frame is logged and dropped without touching connection state.
// A panicking listener is contained to itself; remaining listeners for the
// same frame still run. Nothing in this package is fatal to the hosting
// process; the worst outcome is "temporarily not connected, retrying with
// backoff".
package realtime
