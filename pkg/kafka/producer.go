package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Lending events are low-volume; a short batch window keeps decision
// notifications close to real time.
const batchTimeout = 10 * time.Millisecond

// Message is one event on its way to a topic. Headers carry metadata
// such as the event type and correlation id.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes lending events, keeping one kafka-go writer per
// topic. Safe for concurrent use.
type Producer struct {
	mu      sync.Mutex
	writers map[string]*kafkago.Writer
	brokers []string
}

// NewProducer builds a Producer for the configured brokers. Writers are
// created lazily on first publish to a topic.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		writers: make(map[string]*kafkago.Writer),
		brokers: cfg.Brokers,
	}
}

// Publish writes messages to topic, waiting for acknowledgement from
// all in-sync replicas.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	w := p.getOrCreateWriter(topic)

	out := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		out = append(out, toKafkaMessage(msg))
	}

	if err := w.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes every writer. The first close error wins;
// the remaining writers are still closed.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

func (p *Producer) getOrCreateWriter(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafkago.RequireAll,
	}
	p.writers[topic] = w
	return w
}

func toKafkaMessage(msg Message) kafkago.Message {
	km := kafkago.Message{
		Key:   msg.Key,
		Value: msg.Value,
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafkago.Header{
			Key:   k,
			Value: []byte(v),
		})
	}
	return km
}
