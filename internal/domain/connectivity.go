package domain

import "context"

// ConnectivityGate produces the single effective "connected to the kiosk"
// boolean every gated screen consumes. The effective value is always derived,
// never cached: simulator enabled ? simulated state : real probe result.
type ConnectivityGate interface {
	IsConnectedToKiosk() bool
	IsSimulatorEnabled() bool
	SimulatedConnectionState() bool
	// ToggleSimulator flips and persists the simulator flag, returning the new
	// value.
	ToggleSimulator(ctx context.Context) bool
	SetSimulatedConnectionState(ctx context.Context, state bool)
	// Subscribe registers a listener invoked whenever the effective value
	// flips. The returned function removes the listener.
	Subscribe(fn func(connected bool)) (unsubscribe func())
}
