package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

// MessageWriter часть *kafka.Writer, которой пользуется издатель
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// KafkaPublisher публикует события в один топик
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	logger Logger
}

// NewKafkaPublisher создаёт издателя с синхронным kafka.Writer
// Балансировка по хешу ключа сохраняет порядок событий одной сущности.
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, logger Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: writeTimeout,
		Async:        false,
	}
	return NewPublisherWithWriter(writer, topic, logger)
}

// NewPublisherWithWriter создаёт издателя поверх произвольного writer (используется в тестах)
func NewPublisherWithWriter(writer MessageWriter, topic string, logger Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish сериализует событие в JSON и пишет его с ключом AggregateID
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMarshal, event.Type, err)
	}

	message := kafka.Message{
		Key:   []byte(event.AggregateID.String()),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("%w: topic=%s type=%s: %w", ErrWrite, p.topic, event.Type, err)
	}

	p.logger.Info("Publish: %s id=%s aggregate=%s", event.Type, event.ID, event.AggregateID)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
