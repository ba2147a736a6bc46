// Package events announces changes to purchaser records.
package events

import (
	"context"
	"time"

	"orion_service/internal/models"
)

const (
	UserCreated           = "user.created"
	ShipmentStatusUpdated = "user.shipment_status_updated"
)

type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	User       models.User `json:"user"`
}

func NewEvent(eventType string, user models.User, at time.Time) Event {
	return Event{Type: eventType, OccurredAt: at.UTC(), User: user}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }
