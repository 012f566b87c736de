package ports

import (
	"context"
	"time"
)

// Tipos de evento de dominio publicados tras confirmar la transacción.
const (
	EventSaleCreated       = "venta.creada"
	EventSaleDeleted       = "venta.eliminada"
	EventMovementRecorded  = "movimiento.registrado"
	EventStockBelowMinimum = "producto.stock_bajo"
)

// Event evento de dominio. Key agrupa eventos del mismo agregado (partición).
type Event struct {
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// EventPublisher puerto de salida para eventos de dominio (Kafka o no-op).
// La publicación es posterior al commit: un fallo no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher descarta los eventos.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                        { return nil }
