package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordPayment(t *testing.T, f *fixtures, o *order.Order, method payment.Method, amount, txID string) *payment.Payment {
	t.Helper()
	in := payment.RecordInput{
		OrderID:       o.ID,
		Method:        method,
		TransactionID: txID,
	}
	if amount != "" {
		m := mustMoney(t, amount)
		in.Amount = &m
	}
	p, err := payment.Record(in, o.TotalAmount)
	require.NoError(t, err)
	require.NoError(t, f.payments.Save(context.Background(), p))
	return p
}

func TestGormPaymentRepository(t *testing.T) {
	f := newFixtures(t)
	ctx := context.Background()

	books := f.category(t, "Books")
	novel := f.product(t, books.ID, "Novel", "12.50", 40)
	alice := f.customer(t, "alice")
	bob := f.customer(t, "bob")

	aliceOrder := f.cart(t, alice.ID, 2, novel)
	bobOrder := f.cart(t, bob.ID, 1, novel)

	card := recordPayment(t, f, aliceOrder, payment.MethodCreditCard, "", "TX-1")
	time.Sleep(time.Millisecond)
	refund := recordPayment(t, f, aliceOrder, payment.MethodPayPal, "5.00", "")
	paypal := recordPayment(t, f, bobOrder, payment.MethodPayPal, "", "")

	t.Run("amount defaults to the order total", func(t *testing.T) {
		found, err := f.payments.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, "25.00", found.Amount.String())
		assert.Equal(t, "TX-1", found.TransactionID)
		assert.Equal(t, payment.StatusPending, found.Status)
	})

	t.Run("empty transaction ids do not collide", func(t *testing.T) {
		found, err := f.payments.FindByID(ctx, paypal.ID)
		require.NoError(t, err)
		assert.Empty(t, found.TransactionID)
	})

	t.Run("duplicate transaction id is a conflict", func(t *testing.T) {
		exists, err := f.payments.ExistsByTransactionID(ctx, "TX-1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = f.payments.ExistsByTransactionID(ctx, "")
		require.NoError(t, err)
		assert.False(t, exists)

		dup, err := payment.Record(payment.RecordInput{
			OrderID:       bobOrder.ID,
			Method:        payment.MethodBankTransfer,
			TransactionID: "TX-1",
		}, bobOrder.TotalAmount)
		require.NoError(t, err)

		err = f.payments.Save(ctx, dup)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.KindConflict, de.Kind)
		assert.Equal(t, "transaction_id", de.Field)
	})

	t.Run("lists an order's payments oldest first", func(t *testing.T) {
		payments, err := f.payments.FindByOrder(ctx, aliceOrder.ID)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, card.ID, payments[0].ID)
		assert.Equal(t, refund.ID, payments[1].ID)
	})

	t.Run("status update persists", func(t *testing.T) {
		require.NoError(t, card.UpdateStatus(payment.StatusCompleted))
		require.NoError(t, f.payments.Save(ctx, card))

		found, err := f.payments.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, payment.StatusCompleted, found.Status)
		assert.Equal(t, 2, found.Version)
	})

	tests := []struct {
		name    string
		search  string
		filters map[string]any
		want    []uuid.UUID
		sum     string
	}{
		{"all", "", map[string]any{}, []uuid.UUID{card.ID, refund.ID, paypal.ID}, "42.50"},
		{"method", "", map[string]any{"method": "paypal"}, []uuid.UUID{refund.ID, paypal.ID}, "17.50"},
		{"status", "", map[string]any{"status": "completed"}, []uuid.UUID{card.ID}, "25.00"},
		{"order", "", map[string]any{"order_id": bobOrder.ID}, []uuid.UUID{paypal.ID}, "12.50"},
		{"username search", "ALI", map[string]any{}, []uuid.UUID{card.ID, refund.ID}, "30.00"},
		{"order id search", bobOrder.ID.String()[:8], map[string]any{}, []uuid.UUID{paypal.ID}, "12.50"},
		{"payment id search", refund.ID.String(), map[string]any{}, []uuid.UUID{refund.ID}, "5.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := shared.DefaultFilter()
			filter.Search = tt.search
			filter.Filters = tt.filters

			payments, err := f.payments.FindAll(ctx, filter)
			require.NoError(t, err)
			ids := make([]uuid.UUID, len(payments))
			for i := range payments {
				ids[i] = payments[i].ID
			}
			assert.ElementsMatch(t, tt.want, ids)

			count, err := f.payments.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), count)

			sum, err := f.payments.SumAmount(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, tt.sum, sum.String())
		})
	}

	t.Run("sum of nothing is zero", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["order_id"] = uuid.New()
		sum, err := f.payments.SumAmount(ctx, filter)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestGormPaymentRepository_FindByID_SQL(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPaymentRepository(gormDB)

	paymentID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "order_id", "payment_method", "amount", "transaction_id", "status", "notes"}).
		AddRow(paymentID, now, now, 3, orderID, "bank_transfer", "99.90", nil, "refunded", "")

	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(paymentID, 1).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, orderID, found.OrderID)
	assert.Equal(t, payment.MethodBankTransfer, found.Method)
	assert.Equal(t, "99.90", found.Amount.String())
	assert.Equal(t, payment.StatusRefunded, found.Status)
	assert.Empty(t, found.TransactionID)
	assert.Equal(t, 3, found.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
