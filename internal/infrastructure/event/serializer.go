package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// Envelope is the wire form of a domain event on the live feed
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// EventSerializer encodes domain events into envelopes and decodes them
// back into their registered Go types
type EventSerializer struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewEventSerializer creates a new event serializer
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{types: make(map[string]reflect.Type)}
}

// Register records the concrete type decoded for eventType
func (s *EventSerializer) Register(eventType string, prototype shared.DomainEvent) {
	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	s.mu.Lock()
	s.types[eventType] = t
	s.mu.Unlock()
}

// Serialize wraps event in an envelope and encodes it as JSON
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	env, err := s.Wrap(event)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Wrap builds the envelope of event
func (s *EventSerializer) Wrap(event shared.DomainEvent) (Envelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", event.EventType(), err)
	}
	return Envelope{
		ID:            event.EventID(),
		Type:          event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		OccurredAt:    event.OccurredAt().UTC(),
		Payload:       payload,
	}, nil
}

// Deserialize decodes an envelope produced by Serialize into the event type
// registered for it
func (s *EventSerializer) Deserialize(data []byte) (shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	s.mu.RLock()
	t, ok := s.types[env.Type]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", env.Type)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	event, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("registered type for %s is not a domain event", env.Type)
	}
	if r, ok := ptr.(metadataRestorer); ok {
		r.RestoreMetadata(env.ID, env.Type, env.OccurredAt, env.AggregateID, env.AggregateType)
	}
	return event, nil
}

// metadataRestorer is implemented by events embedding shared.BaseDomainEvent
type metadataRestorer interface {
	RestoreMetadata(id uuid.UUID, eventType string, occurredAt time.Time, aggregateID uuid.UUID, aggregateType string)
}

// IsRegistered reports whether eventType can be decoded
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.types[eventType]
	return ok
}

// RegisteredTypes returns the registered event types in sorted order
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
