package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// queueSize is the buffer size for the event queue
	queueSize = 256

	// maxRetries is how many times a failed delivery is retried
	maxRetries = 3

	// deliveryTimeout bounds one delivery attempt
	deliveryTimeout = 10 * time.Second

	// maxResponseBodySize limits how much of the response body we read (1KB)
	maxResponseBodySize = 1024
)

// Dispatcher delivers change notifications to one configured endpoint.
// Dispatch is non-blocking; delivery happens on a background worker with
// retries, so a slow engine never stalls a save.
type Dispatcher struct {
	url    string
	secret string
	client *http.Client
	logger zerolog.Logger
	queue  chan Event
	done   chan struct{}
	closed int32 // atomic flag to prevent double-close
}

// NewDispatcher creates a dispatcher for the given endpoint. Payloads are
// signed with secret when it is non-empty.
func NewDispatcher(url, secret string, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		url:    url,
		secret: secret,
		client: &http.Client{
			Timeout: deliveryTimeout,
		},
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
}

// Start begins processing events from the queue
func (d *Dispatcher) Start() {
	go d.worker()
}

// Close gracefully shuts down the dispatcher. It closes the event queue
// and waits for pending deliveries to complete. Safe to call multiple
// times.
func (d *Dispatcher) Close() error {
	if !atomic.CompareAndSwapInt32(&d.closed, 0, 1) {
		return nil // Already closed
	}
	close(d.queue)
	<-d.done
	return nil
}

// Dispatch queues an event for delivery. Non-blocking: when the queue is
// full the event is dropped and logged, never stalling the caller.
func (d *Dispatcher) Dispatch(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case d.queue <- event:
	default:
		d.logger.Warn().
			Str("event", event.Type).
			Str("strategy_id", event.StrategyID).
			Msg("webhook queue full, dropping event")
	}
}

// worker processes events from the queue
func (d *Dispatcher) worker() {
	defer close(d.done)

	for event := range d.queue {
		d.deliverWithRetry(context.Background(), event)
	}
}

// deliverWithRetry attempts to deliver one event, with exponential
// backoff between attempts.
func (d *Dispatcher) deliverWithRetry(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error().Err(err).Str("event", event.Type).Msg("webhook payload marshal failed")
		return
	}

	deliveryID := uuid.NewString()

	for attempt := 0; attempt <= maxRetries; attempt++ {
		start := time.Now()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(payload))
		if err != nil {
			d.logger.Error().Err(err).Str("url", d.url).Msg("webhook request build failed")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-NetFlow-Event", event.Type)
		req.Header.Set("X-NetFlow-Delivery", deliveryID)
		if d.secret != "" {
			req.Header.Set("X-NetFlow-Signature", ComputeHMAC(payload, d.secret))
		}

		resp, err := d.client.Do(req)

		var statusCode int
		if err == nil {
			statusCode = resp.StatusCode
			// Drain a bounded amount so the connection can be reused
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))
			resp.Body.Close()
		}

		if err == nil && statusCode >= 200 && statusCode < 300 {
			d.logger.Info().
				Str("event", event.Type).
				Str("strategy_id", event.StrategyID).
				Int("status", statusCode).
				Dur("duration", time.Since(start)).
				Int("attempt", attempt+1).
				Msg("webhook delivered")
			return
		}

		if attempt < maxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			d.logger.Warn().
				Err(err).
				Str("event", event.Type).
				Int("status", statusCode).
				Int("attempt", attempt+1).
				Dur("retry_in", backoff).
				Msg("webhook delivery failed, retrying")
			time.Sleep(backoff)
		} else {
			d.logger.Error().
				Err(err).
				Str("event", event.Type).
				Int("status", statusCode).
				Int("attempts", attempt+1).
				Msg("webhook delivery failed permanently")
		}
	}
}
