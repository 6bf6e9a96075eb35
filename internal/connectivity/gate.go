package connectivity

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"go.uber.org/zap"
)

// Persisted simulator slots; "true"/"false" strings.
const (
	SimulatorEnabledKey = "@connection_simulator_enabled"
	SimulatedStateKey   = "@connection_simulated_state"
)

// DefaultDebounceWindow coalescing window for network change events
const DefaultDebounceWindow = 300 * time.Millisecond

// Config gate options
type Config struct {
	// SSIDKeywords identify a kiosk access point, matched case-insensitively.
	SSIDKeywords []string
	// DebounceWindow coalesces rapid network events into one probe.
	DebounceWindow time.Duration
	// DefaultSimulatorEnabled / DefaultSimulatedState are used when no
	// persisted value exists. The fail-open true/true pairing keeps the app
	// usable without network hardware.
	DefaultSimulatorEnabled bool
	DefaultSimulatedState   bool
}

// Gate decides the single "connected to the kiosk" boolean every gated screen
// consumes. The effective value is derived on every read from the simulator
// pair and the real probe result; it is never cached.
type Gate struct {
	kv      driver.KeyValueDB
	netinfo NetInfoProvider
	cfg     Config
	logger  *zap.Logger

	mu               sync.Mutex
	simulatorEnabled bool
	simulatedState   bool
	realState        bool
	debounce         *time.Timer
	probeGen         uint64
	subscribers      map[int]func(bool)
	nextSubID        int
	unsubscribe      func()
}

var _ domain.ConnectivityGate = &Gate{}

// NewGate create a connectivity gate; call Start before use
func NewGate(kv driver.KeyValueDB, netinfo NetInfoProvider, cfg Config, logger *zap.Logger) *Gate {
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = DefaultDebounceWindow
	}
	keywords := make([]string, len(cfg.SSIDKeywords))
	for i, kw := range cfg.SSIDKeywords {
		keywords[i] = strings.ToLower(kw)
	}
	cfg.SSIDKeywords = keywords
	return &Gate{
		kv:          kv,
		netinfo:     netinfo,
		cfg:         cfg,
		logger:      logger,
		subscribers: make(map[int]func(bool)),
	}
}

// Start loads the persisted simulator pair, runs an initial probe and begins
// listening for network changes.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	g.simulatorEnabled = g.loadBool(ctx, SimulatorEnabledKey, g.cfg.DefaultSimulatorEnabled)
	g.simulatedState = g.loadBool(ctx, SimulatedStateKey, g.cfg.DefaultSimulatedState)
	g.mu.Unlock()

	g.probe(ctx)
	g.unsubscribe = g.netinfo.Subscribe(g.onNetworkEvent)
}

// Close stops the network subscription and any pending probe.
func (g *Gate) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.mu.Lock()
	if g.debounce != nil {
		g.debounce.Stop()
		g.debounce = nil
	}
	g.mu.Unlock()
}

// IsConnectedToKiosk implement domain.ConnectivityGate
func (g *Gate) IsConnectedToKiosk() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.effectiveLocked()
}

// IsSimulatorEnabled implement domain.ConnectivityGate
func (g *Gate) IsSimulatorEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.simulatorEnabled
}

// SimulatedConnectionState implement domain.ConnectivityGate
func (g *Gate) SimulatedConnectionState() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.simulatedState
}

// ToggleSimulator implement domain.ConnectivityGate
func (g *Gate) ToggleSimulator(ctx context.Context) bool {
	g.mu.Lock()
	before := g.effectiveLocked()
	g.simulatorEnabled = !g.simulatorEnabled
	enabled := g.simulatorEnabled
	after := g.effectiveLocked()
	g.mu.Unlock()

	g.persistBool(ctx, SimulatorEnabledKey, enabled)
	if before != after {
		g.notify(after)
	}
	return enabled
}

// SetSimulatedConnectionState implement domain.ConnectivityGate
func (g *Gate) SetSimulatedConnectionState(ctx context.Context, state bool) {
	g.mu.Lock()
	before := g.effectiveLocked()
	g.simulatedState = state
	after := g.effectiveLocked()
	g.mu.Unlock()

	g.persistBool(ctx, SimulatedStateKey, state)
	if before != after {
		g.notify(after)
	}
}

// Subscribe implement domain.ConnectivityGate
func (g *Gate) Subscribe(fn func(connected bool)) func() {
	g.mu.Lock()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = fn
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		delete(g.subscribers, id)
		g.mu.Unlock()
	}
}

// onNetworkEvent coalesces event bursts into one probe per debounce window.
func (g *Gate) onNetworkEvent() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.debounce != nil {
		g.debounce.Stop()
	}
	g.probeGen++
	g.debounce = time.AfterFunc(g.cfg.DebounceWindow, func() {
		g.probe(context.Background())
	})
}

// probe recomputes the real connection state from a network snapshot. Probe
// errors fail closed. A probe whose fetch outlives a newer network event is
// discarded so a slow snapshot cannot overwrite a fresher one.
func (g *Gate) probe(ctx context.Context) {
	g.mu.Lock()
	gen := g.probeGen
	g.mu.Unlock()

	isKiosk := false
	state, err := g.netinfo.Fetch(ctx)
	if err != nil {
		g.logger.Error("Network probe failed", zap.Error(err))
	} else if state.Type == ConnectionWifi && state.IsConnected {
		ssid := strings.ToLower(state.SSID)
		for _, keyword := range g.cfg.SSIDKeywords {
			if strings.Contains(ssid, keyword) {
				isKiosk = true
				break
			}
		}
	}

	g.mu.Lock()
	if gen != g.probeGen {
		g.mu.Unlock()
		return
	}
	before := g.effectiveLocked()
	g.realState = isKiosk
	after := g.effectiveLocked()
	g.mu.Unlock()

	if before != after {
		g.notify(after)
	}
}

func (g *Gate) effectiveLocked() bool {
	if g.simulatorEnabled {
		return g.simulatedState
	}
	return g.realState
}

func (g *Gate) notify(connected bool) {
	g.mu.Lock()
	fns := make([]func(bool), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		fns = append(fns, fn)
	}
	g.mu.Unlock()
	for _, fn := range fns {
		fn(connected)
	}
}

func (g *Gate) loadBool(ctx context.Context, key string, fallback bool) bool {
	value, err := g.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, driver.ErrKeyNotFound) {
			g.logger.Error("Failed to load simulator setting",
				zap.String("kv.key", key), zap.Error(err))
		}
		return fallback
	}
	return value == "true"
}

func (g *Gate) persistBool(ctx context.Context, key string, value bool) {
	if err := g.kv.Set(ctx, key, strconv.FormatBool(value)); err != nil {
		g.logger.Error("Failed to persist simulator setting",
			zap.String("kv.key", key), zap.Error(err))
	}
}
