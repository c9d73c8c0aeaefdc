package eventbus

import (
	"context"
	"log/slog"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultIdempotencyCapacity is how many processed keys a tracker remembers.
const DefaultIdempotencyCapacity = 100_000

// KeyExtractor extracts an idempotency key from an event
type KeyExtractor func(events.Event) string

// EventIDKey uses the event's own id as the idempotency key.
func EventIDKey(e events.Event) string {
	if k, ok := e.(events.Keyed); ok {
		return k.Key()
	}
	return ""
}

// IdempotencyTracker tracks processed events by key. It remembers a bounded
// number of keys and evicts the least recently processed first.
type IdempotencyTracker struct {
	processed *lru.Cache[string, struct{}]
	inflight  singleflight.Group
}

// NewIdempotencyTracker creates a tracker holding DefaultIdempotencyCapacity keys.
func NewIdempotencyTracker() *IdempotencyTracker {
	return NewIdempotencyTrackerWithCapacity(DefaultIdempotencyCapacity)
}

// NewIdempotencyTrackerWithCapacity creates a tracker holding at most capacity
// keys. A non-positive capacity falls back to the default.
func NewIdempotencyTrackerWithCapacity(capacity int) *IdempotencyTracker {
	if capacity <= 0 {
		capacity = DefaultIdempotencyCapacity
	}
	// lru.New only fails for a non-positive size
	processed, _ := lru.New[string, struct{}](capacity)
	return &IdempotencyTracker{processed: processed}
}

// Seen reports whether key has been processed successfully.
func (t *IdempotencyTracker) Seen(key string) bool {
	return t.processed.Contains(key)
}

// Len returns how many keys are currently remembered.
func (t *IdempotencyTracker) Len() int {
	return t.processed.Len()
}

// WithIdempotency wraps a handler so that each key is handled at most once.
// Brokered buses deliver at least once; redeliveries are skipped here.
// Concurrent deliveries of the same key share a single handler call.
func WithIdempotency(
	handler HandlerFunc,
	tracker *IdempotencyTracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e events.Event) error {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}

		log := logger.With(
			"handler", handlerName,
			"event_type", e.Type(),
			"idempotency_key", key,
		)

		if tracker.Seen(key) {
			log.Info("🔁 [SKIP] Event already processed")
			return nil
		}

		_, err, _ := tracker.inflight.Do(key, func() (any, error) {
			if tracker.Seen(key) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			tracker.processed.Add(key, struct{}{})
			return nil, nil
		})
		if err != nil {
			log.Error("handler failed", "error", err)
			return err
		}
		return nil
	}
}
