package connectivity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testKeywords = []string{"ecole", "school", "kiosk"}

func newTestGate(cfg Config) (*Gate, *StubNetInfo, driver.KeyValueDB) {
	if cfg.SSIDKeywords == nil {
		cfg.SSIDKeywords = testKeywords
	}
	if cfg.DebounceWindow == 0 {
		cfg.DebounceWindow = 5 * time.Millisecond
	}
	kv := driver.NewMemoryStore()
	netinfo := NewStubNetInfo()
	return NewGate(kv, netinfo, cfg, zap.NewNop()), netinfo, kv
}

func waitForConnected(t *testing.T, gate *Gate, want bool) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return gate.IsConnectedToKiosk() == want
	}, time.Second, 2*time.Millisecond)
}

func TestDefaultsFailOpen(t *testing.T) {
	gate, _, _ := newTestGate(Config{
		DefaultSimulatorEnabled: true,
		DefaultSimulatedState:   true,
	})
	gate.Start(context.Background())
	defer gate.Close()

	// no persisted values, no network: the simulated pair keeps the app usable
	assert.True(t, gate.IsSimulatorEnabled())
	assert.True(t, gate.SimulatedConnectionState())
	assert.True(t, gate.IsConnectedToKiosk())
}

func TestRealProbeMatchesSSIDKeywords(t *testing.T) {
	cases := []struct {
		name  string
		state NetworkState
		want  bool
	}{
		{"kiosk wifi", NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "Ecole-Kiosk-01"}, true},
		{"keyword case insensitive", NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "MY-SCHOOL-AP"}, true},
		{"home wifi", NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "Livebox-1234"}, false},
		{"wifi not connected", NetworkState{Type: ConnectionWifi, IsConnected: false, SSID: "Ecole-Kiosk-01"}, false},
		{"cellular", NetworkState{Type: ConnectionCellular, IsConnected: true}, false},
		{"offline", NetworkState{Type: ConnectionNone}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate, netinfo, _ := newTestGate(Config{})
			netinfo.SetState(tc.state)
			gate.Start(context.Background())
			defer gate.Close()

			assert.Equal(t, tc.want, gate.IsConnectedToKiosk())
		})
	}
}

func TestSimulatorOverridesRealState(t *testing.T) {
	gate, netinfo, _ := newTestGate(Config{
		DefaultSimulatorEnabled: true,
		DefaultSimulatedState:   false,
	})
	netinfo.SetState(NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "Ecole-Kiosk-01"})
	gate.Start(context.Background())
	defer gate.Close()

	// really connected, but the simulator says no
	assert.False(t, gate.IsConnectedToKiosk())

	gate.SetSimulatedConnectionState(context.Background(), true)
	assert.True(t, gate.IsConnectedToKiosk())

	// disabling the simulator reveals the real state
	gate.ToggleSimulator(context.Background())
	assert.False(t, gate.IsSimulatorEnabled())
	assert.True(t, gate.IsConnectedToKiosk())
}

func TestToggleSimulatorPersists(t *testing.T) {
	ctx := context.Background()
	gate, _, kv := newTestGate(Config{DefaultSimulatorEnabled: true, DefaultSimulatedState: true})
	gate.Start(ctx)

	enabled := gate.ToggleSimulator(ctx)
	assert.False(t, enabled)
	value, err := kv.Get(ctx, SimulatorEnabledKey)
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	gate.SetSimulatedConnectionState(ctx, false)
	value, err = kv.Get(ctx, SimulatedStateKey)
	require.NoError(t, err)
	assert.Equal(t, "false", value)
	gate.Close()

	// a new gate over the same store picks the persisted pair up
	netinfo := NewStubNetInfo()
	revived := NewGate(kv, netinfo, Config{
		SSIDKeywords:            testKeywords,
		DebounceWindow:          5 * time.Millisecond,
		DefaultSimulatorEnabled: true,
		DefaultSimulatedState:   true,
	}, zap.NewNop())
	revived.Start(ctx)
	defer revived.Close()

	assert.False(t, revived.IsSimulatorEnabled())
	assert.False(t, revived.SimulatedConnectionState())
}

func TestNetworkEventsDebounced(t *testing.T) {
	gate, netinfo, _ := newTestGate(Config{})
	gate.Start(context.Background())
	defer gate.Close()

	require.False(t, gate.IsConnectedToKiosk())

	// a burst of events settles on the final state after the window
	netinfo.SetState(NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "Livebox-1234"})
	netinfo.SetState(NetworkState{Type: ConnectionNone})
	netinfo.SetState(NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "Ecole-Kiosk-01"})

	waitForConnected(t, gate, true)

	netinfo.SetState(NetworkState{Type: ConnectionNone})
	waitForConnected(t, gate, false)
}

func TestProbeFailureFailsClosed(t *testing.T) {
	gate, netinfo, _ := newTestGate(Config{})
	netinfo.SetState(NetworkState{Type: ConnectionWifi, IsConnected: true, SSID: "Ecole-Kiosk-01"})
	gate.Start(context.Background())
	defer gate.Close()

	require.True(t, gate.IsConnectedToKiosk())

	netinfo.FailWith(errors.New("netinfo unavailable"))
	waitForConnected(t, gate, false)
}

func TestSubscribeNotifiesOnEffectiveFlips(t *testing.T) {
	ctx := context.Background()
	gate, _, _ := newTestGate(Config{DefaultSimulatorEnabled: true, DefaultSimulatedState: false})
	gate.Start(ctx)
	defer gate.Close()

	var mu sync.Mutex
	var flips []bool
	unsubscribe := gate.Subscribe(func(connected bool) {
		mu.Lock()
		flips = append(flips, connected)
		mu.Unlock()
	})

	gate.SetSimulatedConnectionState(ctx, true)
	gate.SetSimulatedConnectionState(ctx, true) // no flip, no callback
	gate.SetSimulatedConnectionState(ctx, false)

	mu.Lock()
	assert.Equal(t, []bool{true, false}, flips)
	mu.Unlock()

	unsubscribe()
	gate.SetSimulatedConnectionState(ctx, true)
	mu.Lock()
	assert.Len(t, flips, 2)
	mu.Unlock()
}

// slowNetInfo holds its first fetch in flight until release is closed; later
// fetches answer immediately from the next queued state.
type slowNetInfo struct {
	mu      sync.Mutex
	states  []*NetworkState
	calls   int
	started chan struct{}
	release chan struct{}
}

func (s *slowNetInfo) Fetch(ctx context.Context) (*NetworkState, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	state := s.states[call]
	s.mu.Unlock()
	if call == 0 {
		close(s.started)
		<-s.release
	}
	return state, nil
}

func (s *slowNetInfo) Subscribe(fn func()) func() {
	return func() {}
}

func TestSlowProbeDoesNotOverwriteNewerResult(t *testing.T) {
	netinfo := &slowNetInfo{
		states: []*NetworkState{
			{Type: ConnectionNone},
			{Type: ConnectionWifi, IsConnected: true, SSID: "Ecole-Kiosk-01"},
		},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	gate := NewGate(driver.NewMemoryStore(), netinfo, Config{
		SSIDKeywords:   testKeywords,
		DebounceWindow: time.Millisecond,
	}, zap.NewNop())
	defer gate.Close()

	go gate.probe(context.Background())
	<-netinfo.started

	// a fresh network event lands while the first fetch is still in flight
	gate.onNetworkEvent()
	waitForConnected(t, gate, true)

	// the held fetch now returns its offline snapshot; it must be discarded
	close(netinfo.release)
	time.Sleep(20 * time.Millisecond)
	assert.True(t, gate.IsConnectedToKiosk())
}
