package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/config"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// envelope formato JSON del mensaje publicado.
type envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Key        string    `json:"key,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher publica eventos de dominio en un tópico Kafka con un SyncProducer.
type Publisher struct {
	producer  sarama.SyncProducer
	topic     string
	attempts  int
	baseDelay time.Duration
}

// NewPublisher crea el productor síncrono con acks de todas las réplicas e idempotencia.
func NewPublisher(cfg config.KafkaConfig) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: sin brokers configurados")
	}
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = cfg.Retries
	sc.Producer.Idempotent = true
	sc.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("kafka: crear productor: %w", err)
	}
	return newPublisher(producer, cfg.Topic, cfg.Retries), nil
}

func newPublisher(producer sarama.SyncProducer, topic string, retries int) *Publisher {
	if retries < 0 {
		retries = 0
	}
	return &Publisher{
		producer:  producer,
		topic:     topic,
		attempts:  retries + 1,
		baseDelay: 100 * time.Millisecond,
	}
}

// Publish envía el evento; reintenta con backoff exponencial hasta agotar los intentos o el contexto.
func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	env := envelope{
		ID:         uuid.NewString(),
		Type:       event.Type,
		Key:        event.Key,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
			{Key: []byte("event-id"), Value: []byte(env.ID)},
			{Key: []byte("timestamp"), Value: []byte(env.OccurredAt.Format(time.RFC3339))},
		},
	}
	if event.Key != "" {
		msg.Key = sarama.StringEncoder(event.Key)
	}

	logger := zerolog.Ctx(ctx)
	var lastErr error
	for attempt := 0; attempt < p.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("kafka: contexto cancelado: %w", err)
		}
		partition, offset, err := p.producer.SendMessage(msg)
		if err == nil {
			logger.Debug().
				Str("topic", p.topic).
				Str("event_type", event.Type).
				Int32("partition", partition).
				Int64("offset", offset).
				Msg("evento publicado")
			return nil
		}
		lastErr = err
		logger.Warn().Err(err).
			Str("event_type", event.Type).
			Int("attempt", attempt+1).
			Int("max_attempts", p.attempts).
			Msg("fallo publicando evento")

		if attempt < p.attempts-1 {
			delay := p.baseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return fmt.Errorf("kafka: contexto cancelado durante backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("kafka: evento %s no publicado tras %d intentos: %w", event.Type, p.attempts, lastErr)
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
