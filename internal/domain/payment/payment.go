package payment

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// Method is how a payment was made
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodPayPal       Method = "paypal"
	MethodBankTransfer Method = "bank_transfer"
)

// AllMethods returns every supported payment method
func AllMethods() []Method {
	return []Method{MethodCreditCard, MethodPayPal, MethodBankTransfer}
}

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	switch m {
	case MethodCreditCard, MethodPayPal, MethodBankTransfer:
		return true
	}
	return false
}

// Label returns the display name
func (m Method) Label() string {
	switch m {
	case MethodCreditCard:
		return "Credit Card"
	case MethodPayPal:
		return "PayPal"
	case MethodBankTransfer:
		return "Bank Transfer"
	}
	return string(m)
}

// ParseMethod accepts exactly one of the supported literals
func ParseMethod(value string) (Method, error) {
	m := Method(value)
	if !m.IsValid() {
		return "", shared.NewValidationError("INVALID_PAYMENT_METHOD",
			"payment method must be one of: credit_card, paypal, bank_transfer").WithField("payment_method")
	}
	return m, nil
}

// Status is the recorded state of a payment. It is a free-form field:
// staff may set any status from any other.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// AllStatuses returns every payment status
func AllStatuses() []Status {
	return []Status{StatusPending, StatusCompleted, StatusFailed, StatusRefunded}
}

// IsValid checks if the status is one of the four literals
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// ParseStatus accepts exactly one of the four literals
func ParseStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", shared.NewValidationError("INVALID_STATUS",
			"payment status must be one of: pending, completed, failed, refunded").WithField("status")
	}
	return s, nil
}

// Payment is an append-only record of a payment attempt against an order
type Payment struct {
	shared.BaseAggregateRoot
	OrderID       uuid.UUID
	Method        Method
	Amount        valueobject.Money
	TransactionID string
	Status        Status
	Notes         string
}

// RecordInput carries the operator's input for a new payment. A nil Amount
// means "charge the order total".
type RecordInput struct {
	OrderID       uuid.UUID
	Method        Method
	Amount        *valueobject.Money
	Status        Status
	TransactionID string
	Notes         string
}

// Record creates a payment for an order whose current total is orderTotal.
// The amount defaults to the order total and may be overridden; either way
// it must be positive. Equality with the total is not enforced.
func Record(in RecordInput, orderTotal valueobject.Money) (*Payment, error) {
	if in.OrderID == uuid.Nil {
		return nil, shared.NewFieldValidationError("order_id", "Order is required")
	}
	if !in.Method.IsValid() {
		_, err := ParseMethod(string(in.Method))
		return nil, err
	}

	amount := orderTotal
	if in.Amount != nil {
		amount = *in.Amount
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Payment amount must be greater than zero").WithField("amount")
	}

	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		_, err := ParseStatus(string(status))
		return nil, err
	}

	transactionID := strings.TrimSpace(in.TransactionID)
	if len(transactionID) > 100 {
		return nil, shared.NewFieldValidationError("transaction_id", "Transaction ID cannot exceed 100 characters")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           in.OrderID,
		Method:            in.Method,
		Amount:            amount,
		TransactionID:     transactionID,
		Status:            status,
		Notes:             strings.TrimSpace(in.Notes),
	}
	p.AddDomainEvent(NewPaymentRecordedEvent(p))
	return p, nil
}

// UpdateStatus sets the status. No transition is forbidden.
func (p *Payment) UpdateStatus(status Status) error {
	if !status.IsValid() {
		_, err := ParseStatus(string(status))
		return err
	}
	if status == p.Status {
		return nil
	}

	old := p.Status
	p.Status = status
	p.Touch()
	p.AddDomainEvent(NewPaymentStatusChangedEvent(p, old))
	return nil
}

// MatchesOrderTotal reports whether the amount equals the given total
func (p *Payment) MatchesOrderTotal(total valueobject.Money) bool {
	return p.Amount.Equals(total)
}

// HasTransactionID reports whether a transaction id was supplied
func (p *Payment) HasTransactionID() bool {
	return p.TransactionID != ""
}
