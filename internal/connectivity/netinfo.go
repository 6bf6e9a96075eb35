package connectivity

import (
	"context"
	"sync"
)

// ConnectionType active network interface kind
type ConnectionType string

const (
	ConnectionWifi     ConnectionType = "wifi"
	ConnectionCellular ConnectionType = "cellular"
	ConnectionNone     ConnectionType = "none"
)

// NetworkState snapshot of the device network
type NetworkState struct {
	Type        ConnectionType
	IsConnected bool
	SSID        string // access-point name, wifi only, may be empty
}

// NetInfoProvider exposes the current network state and a change
// subscription. Listeners only signal that something changed; the gate
// re-fetches the state itself.
type NetInfoProvider interface {
	Fetch(ctx context.Context) (*NetworkState, error)
	Subscribe(fn func()) (unsubscribe func())
}

// StubNetInfo controllable NetInfoProvider used by the demo binary and in
// tests. SetState swaps the snapshot and fires the change listeners.
type StubNetInfo struct {
	mu        sync.Mutex
	state     NetworkState
	err       error
	listeners map[int]func()
	nextID    int
}

var _ NetInfoProvider = &StubNetInfo{}

// NewStubNetInfo create a provider reporting "no connection"
func NewStubNetInfo() *StubNetInfo {
	return &StubNetInfo{
		state:     NetworkState{Type: ConnectionNone},
		listeners: make(map[int]func()),
	}
}

// Fetch implement NetInfoProvider
func (sn *StubNetInfo) Fetch(ctx context.Context) (*NetworkState, error) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.err != nil {
		return nil, sn.err
	}
	state := sn.state
	return &state, nil
}

// Subscribe implement NetInfoProvider
func (sn *StubNetInfo) Subscribe(fn func()) func() {
	sn.mu.Lock()
	id := sn.nextID
	sn.nextID++
	sn.listeners[id] = fn
	sn.mu.Unlock()
	return func() {
		sn.mu.Lock()
		delete(sn.listeners, id)
		sn.mu.Unlock()
	}
}

// SetState swap the snapshot and notify listeners
func (sn *StubNetInfo) SetState(state NetworkState) {
	sn.mu.Lock()
	sn.state = state
	sn.err = nil
	fns := sn.snapshotListeners()
	sn.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// FailWith make subsequent fetches fail and notify listeners
func (sn *StubNetInfo) FailWith(err error) {
	sn.mu.Lock()
	sn.err = err
	fns := sn.snapshotListeners()
	sn.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (sn *StubNetInfo) snapshotListeners() []func() {
	fns := make([]func(), 0, len(sn.listeners))
	for _, fn := range sn.listeners {
		fns = append(fns, fn)
	}
	return fns
}
