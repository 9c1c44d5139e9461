package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records a payment against an order. Amount defaults
// to the order total when omitted.
type RecordPaymentRequest struct {
	OrderID       uuid.UUID        `json:"order_id" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required,payment_method"`
	Amount        *decimal.Decimal `json:"amount"`
	Status        string           `json:"status" binding:"omitempty,payment_status"`
	TransactionID string           `json:"transaction_id" binding:"omitempty,max=100"`
	Notes         string           `json:"notes" binding:"max=2000"`
}

// UpdatePaymentStatusRequest sets a payment status
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentListFilter represents filter options for payment lists
type PaymentListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,payment_status"`
	Method   string     `form:"payment_method" binding:"omitempty,payment_method"`
	OrderID  *uuid.UUID `form:"-"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by" binding:"omitempty,oneof=created_at amount status"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID             uuid.UUID         `json:"id"`
	OrderID        uuid.UUID         `json:"order_id"`
	PaymentMethod  string            `json:"payment_method"`
	MethodLabel    string            `json:"payment_method_label"`
	Amount         valueobject.Money `json:"amount"`
	TransactionID  string            `json:"transaction_id,omitempty"`
	Status         string            `json:"status"`
	Notes          string            `json:"notes,omitempty"`
	MatchesOrder   *bool             `json:"matches_order_total,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Version        int               `json:"version"`
	PreviousStatus string            `json:"previous_status,omitempty"`
}

// PaymentListResponse is a page of payments with the sum of every
// payment matching the filter
type PaymentListResponse struct {
	Payments    []PaymentResponse `json:"payments"`
	Total       int64             `json:"total"`
	TotalAmount valueobject.Money `json:"total_amount"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		PaymentMethod: string(p.Method),
		MethodLabel:   p.Method.Label(),
		Amount:        p.Amount,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToPaymentResponses converts a slice of domain Payments
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
