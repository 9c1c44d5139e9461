package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment", id)
	}
	return model.ToDomain(), nil
}

// FindByOrder lists an order's payments, oldest first
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]payment.Payment, error) {
	var rows []models.PaymentModel
	if err := conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPayments(rows), nil
}

// FindAll lists payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Payment, error) {
	var rows []models.PaymentModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.PaymentModel{}), filter)
	query = applyPage(query, filter, PaymentSortFields, "created_at", "payments.")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPayments(rows), nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(conn(ctx, r.db).Model(&models.PaymentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumAmount totals the amount of every payment matching the filter
func (r *GormPaymentRepository) SumAmount(ctx context.Context, filter shared.Filter) (valueobject.Money, error) {
	total := valueobject.Zero()
	query := r.applyFilter(conn(ctx, r.db).Model(&models.PaymentModel{}), filter)
	if err := query.Select("COALESCE(SUM(payments.amount), 0)").Row().Scan(&total); err != nil {
		return valueobject.Zero(), err
	}
	return total, nil
}

// ExistsByTransactionID checks transaction id uniqueness
func (r *GormPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return false, nil
	}
	var count int64
	if err := conn(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	err := conn(ctx, r.db).Omit("Order").Save(models.PaymentModelFromDomain(p)).Error
	return translateWriteError(err, "transaction_id", "A payment with this transaction id already exists")
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.
			Joins("LEFT JOIN orders ON orders.id = payments.order_id").
			Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
			Where(
				castText(query, "payments.id")+" LIKE ? OR "+castText(query, "payments.order_id")+" LIKE ? OR LOWER(customers.username) LIKE ?",
				like, like, like,
			)
	}

	if v, ok := filterString(filter, "status"); ok {
		query = query.Where("payments.status = ?", v)
	}
	if v, ok := filterString(filter, "method"); ok {
		query = query.Where("payments.payment_method = ?", v)
	}
	if v, ok := filter.Filters["order_id"].(uuid.UUID); ok {
		query = query.Where("payments.order_id = ?", v)
	}
	return query
}

func toPayments(rows []models.PaymentModel) []payment.Payment {
	payments := make([]payment.Payment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments
}

var _ payment.Repository = (*GormPaymentRepository)(nil)
