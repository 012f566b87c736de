package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/ports"
	"github.com/miguelitowashere/Proyecto-Final-Software/pkg/config"
)

func newMockPublisher(t *testing.T, retries int) (*Publisher, *mocks.SyncProducer) {
	t.Helper()
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, cfg)
	p := newPublisher(producer, "inventario.eventos", retries)
	p.baseDelay = time.Millisecond
	return p, producer
}

func TestPublisher_PublicaSobreConFormato(t *testing.T) {
	p, producer := newMockPublisher(t, 0)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env envelope
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}
		if env.Type != ports.EventSaleCreated || env.Key != "venta-1" || env.ID == "" {
			return errors.New("sobre inesperado")
		}
		return nil
	})

	err := p.Publish(context.Background(), ports.Event{
		Type:    ports.EventSaleCreated,
		Key:     "venta-1",
		Payload: map[string]string{"total": "22.00"},
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublisher_ReintentaHastaLograrlo(t *testing.T) {
	p, producer := newMockPublisher(t, 2)
	producer.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)
	producer.ExpectSendMessageAndSucceed()

	err := p.Publish(context.Background(), ports.Event{Type: ports.EventMovementRecorded, Key: "p-1"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublisher_AgotaIntentos(t *testing.T) {
	p, producer := newMockPublisher(t, 1)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := p.Publish(context.Background(), ports.Event{Type: ports.EventSaleDeleted})
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestPublisher_ContextoCanceladoNoEnvia(t *testing.T) {
	p, _ := newMockPublisher(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, ports.Event{Type: ports.EventSaleCreated})
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, p.Close())
}

func TestNewPublisher_SinBrokers(t *testing.T) {
	_, err := NewPublisher(config.KafkaConfig{Topic: "inventario.eventos"})
	assert.Error(t, err)
}
