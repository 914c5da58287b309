// Package events publica los eventos de dominio del catálogo.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
	UserRegistered = "user.registered"
)

// Event es el sobre que viaja por la cola.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Subject    string    `json:"subject"`
	Data       any       `json:"data,omitempty"`
}

// New arma un evento con id y fecha.
func New(eventType, subject string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Subject:    subject,
		Data:       data,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop descarta todo. Se usa cuando no hay broker configurado.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
