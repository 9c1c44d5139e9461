package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestRecord(t *testing.T) {
	orderID := uuid.New()
	total := money(t, "25.00")

	t.Run("defaults amount to the order total", func(t *testing.T) {
		p, err := Record(RecordInput{OrderID: orderID, Method: MethodCreditCard}, total)
		require.NoError(t, err)
		assert.Equal(t, "25.00", p.Amount.String())
		assert.Equal(t, StatusPending, p.Status)
		assert.True(t, p.MatchesOrderTotal(total))
		assert.False(t, p.HasTransactionID())

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePaymentRecorded, events[0].EventType())
	})

	t.Run("uses the operator amount when given", func(t *testing.T) {
		amount := money(t, "10.00")
		p, err := Record(RecordInput{
			OrderID:       orderID,
			Method:        MethodPayPal,
			Amount:        &amount,
			Status:        StatusCompleted,
			TransactionID: "  TXN-1 ",
		}, total)
		require.NoError(t, err)
		assert.Equal(t, "10.00", p.Amount.String())
		assert.False(t, p.MatchesOrderTotal(total))
		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, "TXN-1", p.TransactionID)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		zero := valueobject.Zero()
		_, err := Record(RecordInput{OrderID: orderID, Method: MethodPayPal, Amount: &zero}, total)
		assert.True(t, shared.IsValidation(err))

		_, err = Record(RecordInput{OrderID: orderID, Method: MethodPayPal}, valueobject.Zero())
		assert.True(t, shared.IsValidation(err))

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})

	t.Run("rejects unknown method and status", func(t *testing.T) {
		_, err := Record(RecordInput{OrderID: orderID, Method: "cash"}, total)
		assert.True(t, shared.IsValidation(err))

		_, err = Record(RecordInput{OrderID: orderID, Method: MethodPayPal, Status: "settled"}, total)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("requires an order", func(t *testing.T) {
		_, err := Record(RecordInput{Method: MethodPayPal}, total)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestPayment_UpdateStatus(t *testing.T) {
	p, err := Record(RecordInput{OrderID: uuid.New(), Method: MethodBankTransfer}, money(t, "5.00"))
	require.NoError(t, err)
	p.ClearDomainEvents()

	require.NoError(t, p.UpdateStatus(StatusRefunded))
	// free-form: refunded back to completed is allowed
	require.NoError(t, p.UpdateStatus(StatusCompleted))
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Len(t, p.GetDomainEvents(), 2)
	assert.Equal(t, 3, p.GetVersion())

	err = p.UpdateStatus("bogus")
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestParseMethod(t *testing.T) {
	for _, m := range AllMethods() {
		parsed, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMethod("bitcoin")
	assert.Error(t, err)
	assert.Equal(t, "PayPal", MethodPayPal.Label())
}
