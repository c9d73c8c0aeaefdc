package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBus publishes events to a single Redis stream. Each registered
// event type reads through its own consumer group, so every type sees every
// message and acks the ones it does not handle.
type RedisEventBus struct {
	client *redis.Client
	stream string
	group  string
	logger *slog.Logger

	handlers  map[events.EventType][]eventbus.HandlerFunc
	consuming map[events.EventType]bool
	mu        sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis connects to cfg.URL and returns a bus writing to cfg.Stream.
func NewWithRedis(cfg *config.Redis, logger *slog.Logger) (*RedisEventBus, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("redis event bus: url is required")
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis event bus: invalid URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}
	return NewWithRedisClient(client, cfg.Stream, cfg.Group, logger), nil
}

// NewWithRedisClient wraps an existing client.
func NewWithRedisClient(client *redis.Client, stream, group string, logger *slog.Logger) *RedisEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:    client,
		stream:    stream,
		group:     group,
		logger:    logger.With("bus", "redis", "stream", stream),
		handlers:  make(map[events.EventType][]eventbus.HandlerFunc),
		consuming: make(map[events.EventType]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Emit appends the event envelope to the stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	envBytes, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{"type": event.Type(), "event": string(envBytes)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "event_type", event.Type(), "error", err)
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "event_type", event.Type())
	return nil
}

// Register adds handler for eventType. The first successful registration for
// a type creates its consumer group and starts the read loop. When group
// creation fails the handler stays registered and the next Register for the
// type tries again.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	if b.consuming[eventType] {
		return
	}

	group := b.groupFor(eventType)
	err := b.client.XGroupCreateMkStream(b.ctx, b.stream, group, "$").Err()
	if err != nil && !isBusyGroup(err) {
		b.logger.Error("failed to create consumer group; will retry on next registration",
			"event_type", eventType, "group", group, "error", err)
		return
	}
	b.consuming[eventType] = true

	consumer := consumerName(eventType)
	b.logger.Info("registering handler", "event_type", eventType, "group", group, "consumer", consumer)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(eventType, group, consumer)
	}()
}

// Consuming reports whether a read loop is running for eventType.
func (b *RedisEventBus) Consuming(eventType events.EventType) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.consuming[eventType]
}

// Close stops the read loops and closes the client.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return b.client.Close()
}

func (b *RedisEventBus) groupFor(eventType events.EventType) string {
	return b.group + "." + eventType.String()
}

func consumerName(eventType events.EventType) string {
	host, err := os.Hostname()
	if err != nil {
		host = "local"
	}
	return fmt.Sprintf("%s-%s-%d", nameFor("consumer", eventType), host, os.Getpid())
}

func (b *RedisEventBus) consume(eventType events.EventType, group, consumer string) {
	for {
		if b.ctx.Err() != nil {
			return
		}
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: consumer,
			Streams:  []string{b.stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if b.ctx.Err() != nil {
				return
			}
			b.logger.Error("error reading from stream", "group", group, "error", err)
			time.Sleep(time.Second)
			continue
		}
		for _, stream := range res {
			for _, msg := range stream.Messages {
				b.handleMessage(eventType, msg)
				if err := b.client.XAck(b.ctx, b.stream, group, msg.ID).Err(); err != nil {
					b.logger.Error("failed to acknowledge message", "msg_id", msg.ID, "error", err)
				}
			}
		}
	}
}

func (b *RedisEventBus) handleMessage(eventType events.EventType, msg redis.XMessage) {
	if t, _ := msg.Values["type"].(string); t != "" && t != eventType.String() {
		return
	}
	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.pushToDLQ(eventType, msg.Values, "missing event field")
		return
	}
	gotType, evt, err := decodeEnvelope([]byte(raw))
	if err != nil {
		b.pushToDLQ(eventType, msg.Values, err.Error())
		return
	}
	if gotType != eventType {
		return
	}

	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[eventType]...)
	b.mu.RUnlock()
	for _, handler := range handlers {
		if err := b.safeCall(handler, evt); err != nil {
			b.logger.Error("handler error", "event_type", eventType, "msg_id", msg.ID, "error", err)
			b.pushToDLQ(eventType, msg.Values, err.Error())
		}
	}
}

func (b *RedisEventBus) safeCall(handler eventbus.HandlerFunc, evt events.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(b.ctx, evt)
}

// pushToDLQ copies the raw message to the per-type dead letter stream.
func (b *RedisEventBus) pushToDLQ(eventType events.EventType, values map[string]any, reason string) {
	dlq := nameFor("dlq", eventType)
	payload := make(map[string]any, len(values)+1)
	for k, v := range values {
		payload[k] = v
	}
	payload["reason"] = reason
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlq, Values: payload}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "stream", dlq, "error", err)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq, "reason", reason)
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
