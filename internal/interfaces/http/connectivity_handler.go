package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/validate"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// streamRefreshInterval bounds how long an idle stream goroutine can sit on a
// dead connection before a write surfaces the error.
const streamRefreshInterval = 30 * time.Second

// ConnectivityHandler kiosk connectivity endpoints
type ConnectivityHandler struct {
	Gate      domain.ConnectivityGate
	Validator validate.Validator

	mu      sync.Mutex
	streams map[*websocket.Conn]*connectivityStream
}

type connectivityStream struct {
	updates     chan bool
	unsubscribe func()
}

// NewConnectivityHandler create a connectivity controller instance
func NewConnectivityHandler(Gate domain.ConnectivityGate, Validator validate.Validator) *ConnectivityHandler {
	return &ConnectivityHandler{
		Gate:      Gate,
		Validator: Validator,
		streams:   make(map[*websocket.Conn]*connectivityStream),
	}
}

type connectivityState struct {
	Connected        bool `json:"connected"`
	SimulatorEnabled bool `json:"simulatorEnabled"`
	SimulatedState   bool `json:"simulatedState"`
}

func (ch *ConnectivityHandler) snapshot() *connectivityState {
	return &connectivityState{
		Connected:        ch.Gate.IsConnectedToKiosk(),
		SimulatorEnabled: ch.Gate.IsSimulatorEnabled(),
		SimulatedState:   ch.Gate.SimulatedConnectionState(),
	}
}

// HandleGetState ...
func (ch *ConnectivityHandler) HandleGetState(c echo.Context) (err error) {
	return c.JSON(http.StatusOK, ch.snapshot())
}

// HandleToggleSimulator flip the simulator flag, returning the full state
func (ch *ConnectivityHandler) HandleToggleSimulator(c echo.Context) (err error) {
	ch.Gate.ToggleSimulator(c.Request().Context())
	return c.JSON(http.StatusOK, ch.snapshot())
}

type simulatedStatePut struct {
	State *bool `json:"state" validate:"required"`
}

// HandleSetSimulatedState ...
func (ch *ConnectivityHandler) HandleSetSimulatedState(c echo.Context) (err error) {
	post := new(simulatedStatePut)
	if err = c.Bind(post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind state entity").SetDetail(internal.Error()))
	}
	if errs := ch.Validator.Struct(post); errs != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", errs))
	}
	ch.Gate.SetSimulatedConnectionState(c.Request().Context(), *post.State)
	return c.JSON(http.StatusOK, ch.snapshot())
}

// HandleStream push effective connectivity flips over a websocket. The
// heartbeat wrapper invokes this repeatedly on the same connection until it
// returns an error.
func (ch *ConnectivityHandler) HandleStream(conn *websocket.Conn) error {
	ch.mu.Lock()
	stream, ok := ch.streams[conn]
	if !ok {
		updates := make(chan bool, 8)
		unsubscribe := ch.Gate.Subscribe(func(connected bool) {
			select {
			case updates <- connected:
			default:
			}
		})
		stream = &connectivityStream{updates: updates, unsubscribe: unsubscribe}
		ch.streams[conn] = stream
		ch.mu.Unlock()

		// first invocation sends the current state right away
		if err := conn.WriteJSON(ch.snapshot()); err != nil {
			ch.drop(conn, stream)
			return err
		}
		return nil
	}
	ch.mu.Unlock()

	var state *connectivityState
	select {
	case connected := <-stream.updates:
		state = ch.snapshot()
		state.Connected = connected
	case <-time.After(streamRefreshInterval):
		state = ch.snapshot()
	}
	if err := conn.WriteJSON(state); err != nil {
		ch.drop(conn, stream)
		return err
	}
	return nil
}

func (ch *ConnectivityHandler) drop(conn *websocket.Conn, stream *connectivityStream) {
	ch.mu.Lock()
	delete(ch.streams, conn)
	ch.mu.Unlock()
	stream.unsubscribe()
}
