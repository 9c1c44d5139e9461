package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything with an identity and audit timestamps
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// AggregateRoot is the unit of persistence and event publication. Version
// backs optimistic locking in the repositories.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEntity carries the identity and timestamps shared by all entities.
// IDs are UUIDv7 so primary keys sort by creation time.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: NewID(), CreatedAt: now, UpdatedAt: now}
}

// NewID returns a time-ordered identifier
func NewID() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}

func (e *BaseEntity) GetID() uuid.UUID        { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// MarkUpdated stamps UpdatedAt with the current time
func (e *BaseEntity) MarkUpdated() {
	e.UpdatedAt = time.Now()
}

// BaseAggregateRoot adds a version counter and a buffer of pending domain
// events to BaseEntity. New aggregates start at version 1.
type BaseAggregateRoot struct {
	BaseEntity
	Version int

	pending []DomainEvent
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

func (a *BaseAggregateRoot) GetVersion() int   { return a.Version }
func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// Touch records a state change: UpdatedAt moves to now and the version is
// bumped.
func (a *BaseAggregateRoot) Touch() {
	a.MarkUpdated()
	a.Version++
}

func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// GetDomainEvents returns the events raised since the last clear, oldest
// first
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pending
}

func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pending = nil
}
