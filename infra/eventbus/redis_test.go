package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// offlineHook answers every command locally. XGROUP fails while failGroup is set.
type offlineHook struct {
	failGroup   atomic.Bool
	groupCreate atomic.Int32
}

func (h *offlineHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *offlineHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() != "xgroup" {
			cmd.SetErr(errors.New("offline"))
			return cmd.Err()
		}
		h.groupCreate.Add(1)
		if h.failGroup.Load() {
			cmd.SetErr(errors.New("connection refused"))
			return cmd.Err()
		}
		return nil
	}
}

func (h *offlineHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisEventBus_RegisterRetriesFailedGroupCreation(t *testing.T) {
	hook := &offlineHook{}
	hook.failGroup.Store(true)
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(hook)
	bus := NewWithRedisClient(client, "digitalbank:test", "digitalbank-test",
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = bus.Close() })

	noop := func(context.Context, events.Event) error { return nil }
	eventType := events.EventTypeMoneyDeposited

	bus.Register(eventType, noop)
	assert.False(t, bus.Consuming(eventType))
	assert.Equal(t, int32(1), hook.groupCreate.Load())

	hook.failGroup.Store(false)
	bus.Register(eventType, noop)
	assert.True(t, bus.Consuming(eventType))
	assert.Equal(t, int32(2), hook.groupCreate.Load())

	bus.Register(eventType, noop)
	assert.Equal(t, int32(2), hook.groupCreate.Load())

	bus.mu.RLock()
	assert.Len(t, bus.handlers[eventType], 3)
	bus.mu.RUnlock()
}
