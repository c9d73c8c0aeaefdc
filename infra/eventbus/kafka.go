package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/digitalbank/pkg/config"
	"github.com/amirasaad/digitalbank/pkg/domain/events"
	"github.com/amirasaad/digitalbank/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

// KafkaEventBus publishes each event type to its own topic,
// "<prefix>.<event type>", and consumes through one reader per registered type.
type KafkaEventBus struct {
	brokers     []string
	topicPrefix string
	groupID     string
	writer      *kafka.Writer
	dialer      *kafka.Dialer

	handlers    map[events.EventType][]eventbus.HandlerFunc
	handlersMtx sync.RWMutex

	readers    map[events.EventType]*kafka.Reader
	readersMtx sync.Mutex
	topics     map[string]struct{}
	topicsMtx  sync.Mutex

	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithKafka creates a Kafka-backed event bus and checks the first broker is reachable.
func NewWithKafka(cfg *config.Kafka, logger *slog.Logger) (*KafkaEventBus, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kafka event bus: config is required")
	}
	brokers := parseBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	bus := &KafkaEventBus{
		brokers:     brokers,
		topicPrefix: cfg.TopicPrefix,
		groupID:     cfg.GroupID,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireOne,
			Balancer:               &kafka.Hash{},
		},
		dialer:   &kafka.Dialer{Timeout: 5 * time.Second},
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		readers:  make(map[events.EventType]*kafka.Reader),
		topics:   make(map[string]struct{}),
		logger:   logger.With("bus", "kafka"),
		ctx:      ctx,
		cancel:   cancel,
	}

	if err := bus.ping(ctx); err != nil {
		_ = bus.Close()
		return nil, err
	}
	logger.Info("🚀 Kafka event bus initialized", "group_id", cfg.GroupID, "brokers", brokers)
	return bus, nil
}

// Close stops the consumers and closes the writer.
func (b *KafkaEventBus) Close() error {
	if b == nil {
		return nil
	}
	b.cancel()
	b.readersMtx.Lock()
	for _, r := range b.readers {
		_ = r.Close()
	}
	b.readersMtx.Unlock()
	b.wg.Wait()
	return b.writer.Close()
}

// Register registers an event handler for a specific event type.
func (b *KafkaEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.handlersMtx.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.handlersMtx.Unlock()
	b.ensureConsumer(eventType)
}

// Emit publishes an event to the topic of its type.
func (b *KafkaEventBus) Emit(ctx context.Context, event events.Event) error {
	envBytes, err := encodeEnvelope(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: %w", err)
	}
	eventType := events.EventType(event.Type())
	topic := topicNameFor(b.topicPrefix, eventType)
	if err := b.ensureTopic(ctx, topic); err != nil {
		return err
	}
	key := []byte(event.Type())
	if k, ok := event.(events.Keyed); ok {
		key = []byte(k.Key())
	}
	if err := b.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: envBytes,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}
	return nil
}

func (b *KafkaEventBus) ping(ctx context.Context) error {
	conn, err := b.dialer.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka event bus: connection failed: %w", err)
	}
	_ = conn.Close()
	return nil
}

func (b *KafkaEventBus) ensureConsumer(eventType events.EventType) {
	b.readersMtx.Lock()
	defer b.readersMtx.Unlock()
	if _, exists := b.readers[eventType]; exists {
		return
	}

	topic := topicNameFor(b.topicPrefix, eventType)
	if err := b.ensureTopic(b.ctx, topic); err != nil {
		b.logger.Error("kafka ensure topic error", "event_type", eventType, "error", err)
		return
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.groupID,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		Dialer:      b.dialer,
	})
	b.readers[eventType] = reader

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consumeLoop(eventType, reader)
	}()
}

func (b *KafkaEventBus) consumeLoop(eventType events.EventType, reader *kafka.Reader) {
	for {
		msg, err := reader.FetchMessage(b.ctx)
		if err != nil {
			if b.ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			b.logger.Error("kafka consume error", "event_type", eventType, "error", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		commit, procErr := b.processMessage(b.ctx, eventType, msg)
		if commit {
			if err := reader.CommitMessages(b.ctx, msg); err != nil {
				b.logger.Error("kafka commit error", "topic", msg.Topic, "offset", msg.Offset, "error", err)
			}
		} else if procErr != nil {
			b.logger.Error("kafka message processing failed; will retry",
				"topic", msg.Topic, "offset", msg.Offset, "error", procErr)
			time.Sleep(500 * time.Millisecond)
		}
	}
}

// processMessage decodes msg and runs the handlers. It reports whether the
// offset may be committed; undecodable messages are committed and dropped,
// failed handler runs are committed once the message is parked in the DLQ.
func (b *KafkaEventBus) processMessage(
	ctx context.Context,
	expectedType events.EventType,
	msg kafka.Message,
) (commit bool, err error) {
	evtType, evt, err := decodeEnvelope(msg.Value)
	if err != nil {
		b.logger.Error("failed to decode message", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		return true, nil
	}
	if evtType != expectedType {
		b.logger.Warn("envelope type mismatch for topic", "expected", expectedType, "actual", evtType)
	}

	b.handlersMtx.RLock()
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[evtType]...)
	b.handlersMtx.RUnlock()
	if len(handlers) == 0 {
		b.logger.Warn("no handlers registered for event type", "event_type", evtType)
		return true, nil
	}

	failed := false
	for _, h := range handlers {
		if herr := h(ctx, evt); herr != nil {
			failed = true
			b.logger.Error("handler error", "event_type", evtType, "offset", msg.Offset, "error", herr)
		}
	}
	if !failed {
		return true, nil
	}
	if err := b.publishToDLQ(ctx, evtType, msg.Value); err != nil {
		return false, err
	}
	return true, nil
}

func (b *KafkaEventBus) publishToDLQ(ctx context.Context, eventType events.EventType, raw []byte) error {
	dlqTopic := dlqTopicNameFor(b.topicPrefix, eventType)
	if err := b.ensureTopic(ctx, dlqTopic); err != nil {
		return err
	}
	if err := b.writer.WriteMessages(ctx, kafka.Message{
		Topic: dlqTopic,
		Key:   []byte(eventType.String()),
		Value: raw,
		Time:  time.Now(),
	}); err != nil {
		return fmt.Errorf("kafka event bus: dlq publish failed: %w", err)
	}
	b.logger.Warn("message sent to DLQ", "event_type", eventType, "dlq_topic", dlqTopic)
	return nil
}

func (b *KafkaEventBus) ensureTopic(ctx context.Context, topic string) error {
	b.topicsMtx.Lock()
	_, exists := b.topics[topic]
	b.topicsMtx.Unlock()
	if exists {
		return nil
	}

	conn, err := b.dialer.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka event bus: dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("kafka event bus: create topic failed: %w", err)
	}

	b.topicsMtx.Lock()
	b.topics[topic] = struct{}{}
	b.topicsMtx.Unlock()
	return nil
}

func parseBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

const defaultTopicPrefix = "digitalbank.events"

func topicNameFor(prefix string, eventType events.EventType) string {
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = defaultTopicPrefix
	}
	return fmt.Sprintf("%s.%s", prefix, strings.ToLower(eventType.String()))
}

func dlqTopicNameFor(prefix string, eventType events.EventType) string {
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = defaultTopicPrefix
	}
	return fmt.Sprintf("%s.dlq.%s", prefix, strings.ToLower(eventType.String()))
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
