package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate. Events are buffered on the
// aggregate and published after the owning transaction commits.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent holds the envelope metadata of an event. The fields are
// unexported so an event's JSON encoding is its payload only; transports
// carry the metadata beside it and restore it with RestoreMetadata.
type BaseDomainEvent struct {
	id            uuid.UUID
	eventType     string
	occurredAt    time.Time
	aggregateID   uuid.UUID
	aggregateType string
}

func NewBaseDomainEvent(eventType, aggregateType string, aggregateID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		id:            NewID(),
		eventType:     eventType,
		occurredAt:    time.Now(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.id }
func (e *BaseDomainEvent) EventType() string      { return e.eventType }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.occurredAt }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.aggregateID }
func (e *BaseDomainEvent) AggregateType() string  { return e.aggregateType }

// RestoreMetadata sets the metadata of an event decoded from its payload
func (e *BaseDomainEvent) RestoreMetadata(id uuid.UUID, eventType string, occurredAt time.Time, aggregateID uuid.UUID, aggregateType string) {
	e.id = id
	e.eventType = eventType
	e.occurredAt = occurredAt
	e.aggregateID = aggregateID
	e.aggregateType = aggregateType
}

// EventHandler consumes published events. An empty EventTypes means every
// event is delivered.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is an EventPublisher with subscriptions and a dispatch lifecycle
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
