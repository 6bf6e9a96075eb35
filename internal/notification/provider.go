package notification

import (
	"context"
	"sync"
	"time"

	"github.com/bonecole/appcore/internal/infrastructure/uuid"
	"go.uber.org/zap"
)

// Content platform-independent notification payload
type Content struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Request one pending scheduled notification
type Request struct {
	Handle    string    `json:"handle"`
	Content   Content   `json:"content"`
	DeliverAt time.Time `json:"deliverAt"`
}

// Provider is the local notification platform the scheduler drives. Delayed
// delivery returns a cancellable handle.
type Provider interface {
	PermissionGranted(ctx context.Context) (bool, error)
	RequestPermission(ctx context.Context) (bool, error)
	// ConfigureChannel performs the one-time platform channel setup; it is
	// idempotent.
	ConfigureChannel(ctx context.Context) error
	// Notify delivers immediately, no handle, no cancellation path.
	Notify(ctx context.Context, content Content) error
	Schedule(ctx context.Context, content Content, delay time.Duration) (string, error)
	Cancel(ctx context.Context, handle string) error
	Scheduled(ctx context.Context) ([]Request, error)
}

// Sink receives notifications the timer provider delivers.
type Sink interface {
	Deliver(content Content)
}

// LogSink writes delivered notifications to the app log. It stands in for a
// real notification tray in server-side and development runs.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink .
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Deliver implement Sink
func (ls *LogSink) Deliver(content Content) {
	ls.logger.Info("Notification delivered",
		zap.String("notification.title", content.Title),
		zap.String("notification.body", content.Body),
	)
}

// TimerProvider in-process Provider backed by time.AfterFunc. Handles are
// nanoids; cancelling an unknown handle is a no-op.
type TimerProvider struct {
	mu      sync.Mutex
	granted bool
	asked   bool
	allow   bool // answer given when permission is requested
	pending map[string]*pendingTimer
	sink    Sink
	ids     uuid.Generator
}

type pendingTimer struct {
	timer     *time.Timer
	content   Content
	deliverAt time.Time
}

var _ Provider = &TimerProvider{}

// NewTimerProvider create a timer provider delivering to sink. allow is the
// answer the simulated user gives when permission is requested.
func NewTimerProvider(sink Sink, allow bool, ids uuid.Generator) *TimerProvider {
	return &TimerProvider{
		allow:   allow,
		pending: make(map[string]*pendingTimer),
		sink:    sink,
		ids:     ids,
	}
}

// PermissionGranted implement Provider
func (tp *TimerProvider) PermissionGranted(ctx context.Context) (bool, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	return tp.granted, nil
}

// RequestPermission implement Provider
func (tp *TimerProvider) RequestPermission(ctx context.Context) (bool, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if !tp.asked {
		tp.asked = true
		tp.granted = tp.allow
	}
	return tp.granted, nil
}

// ConfigureChannel implement Provider
func (tp *TimerProvider) ConfigureChannel(ctx context.Context) error {
	return nil
}

// Notify implement Provider
func (tp *TimerProvider) Notify(ctx context.Context, content Content) error {
	tp.sink.Deliver(content)
	return nil
}

// Schedule implement Provider
func (tp *TimerProvider) Schedule(ctx context.Context, content Content, delay time.Duration) (string, error) {
	handle, err := tp.ids.Generate()
	if err != nil {
		return "", err
	}
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.pending[handle] = &pendingTimer{
		content:   content,
		deliverAt: time.Now().Add(delay),
		timer: time.AfterFunc(delay, func() {
			tp.mu.Lock()
			delete(tp.pending, handle)
			tp.mu.Unlock()
			tp.sink.Deliver(content)
		}),
	}
	return handle, nil
}

// Cancel implement Provider
func (tp *TimerProvider) Cancel(ctx context.Context, handle string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if pending, ok := tp.pending[handle]; ok {
		pending.timer.Stop()
		delete(tp.pending, handle)
	}
	return nil
}

// Scheduled implement Provider
func (tp *TimerProvider) Scheduled(ctx context.Context) ([]Request, error) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	var requests []Request
	for handle, pending := range tp.pending {
		requests = append(requests, Request{
			Handle:    handle,
			Content:   pending.content,
			DeliverAt: pending.deliverAt,
		})
	}
	return requests, nil
}
