package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type txKey struct{}

// GormTxManager implements shared.TransactionManager. The open transaction
// travels in the context handed to fn and repositories pick it up from there.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTransaction runs fn in a transaction. Nested calls join the
// outer transaction.
func (m *GormTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate adds a row lock when running inside a transaction on a
// database that supports it
func forUpdate(ctx context.Context, db *gorm.DB) *gorm.DB {
	q := conn(ctx, db)
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); !ok || q.Dialector.Name() == "sqlite" {
		return q
	}
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}

// notFound maps gorm.ErrRecordNotFound to a domain not-found error
func notFound(err error, entity string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity, id)
	}
	return err
}

// translateWriteError turns a unique-key violation into a conflict error
// naming field. Drivers without error translation are matched on the
// message text.
func translateWriteError(err error, field, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return shared.NewConflictError(field, message)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// applyPage adds ordering, offset and limit from the filter
func applyPage(q *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField, prefix string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	q = q.Order(prefix + field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return q
}
