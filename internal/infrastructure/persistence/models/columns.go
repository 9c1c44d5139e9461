package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// EntityColumns are the identity and audit columns every table carries
type EntityColumns struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (c *EntityColumns) Entity() shared.BaseEntity {
	return shared.BaseEntity{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (c *EntityColumns) SetEntity(e shared.BaseEntity) {
	c.ID, c.CreatedAt, c.UpdatedAt = e.ID, e.CreatedAt, e.UpdatedAt
}

// VersionedColumns adds the optimistic lock column of aggregate tables.
// Repositories update with WHERE version = loaded version.
type VersionedColumns struct {
	EntityColumns
	Version int `gorm:"not null;default:1"`
}

// Root rebuilds the aggregate base. Loaded aggregates carry no pending
// events.
func (c *VersionedColumns) Root() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: c.Entity(), Version: c.Version}
}

func (c *VersionedColumns) SetRoot(a shared.BaseAggregateRoot) {
	c.SetEntity(a.BaseEntity)
	c.Version = a.Version
}

// All returns one value of every model, parents before children, for
// AutoMigrate and table resets
func All() []any {
	return []any{
		&StaffUserModel{},
		&CustomerModel{},
		&CategoryModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PaymentModel{},
		&ReviewModel{},
	}
}
