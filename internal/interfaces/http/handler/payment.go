package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentapp "github.com/shopdesk/backend/internal/application/payment"
)

// PaymentUseCase is the payment ledger as seen by the HTTP layer
type PaymentUseCase interface {
	Record(ctx context.Context, req paymentapp.RecordPaymentRequest) (*paymentapp.PaymentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req paymentapp.UpdatePaymentStatusRequest) (*paymentapp.PaymentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*paymentapp.PaymentResponse, error)
	List(ctx context.Context, filter paymentapp.PaymentListFilter) (*paymentapp.PaymentListResponse, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]paymentapp.PaymentResponse, error)
}

// PaymentHandler serves the staff payment ledger
type PaymentHandler struct {
	BaseHandler
	paymentService PaymentUseCase
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Description  The response carries the summed amount of every payment matching the filter
// @Tags         admin-payments
// @Produce      json
// @Param        search         query string false "Search by transaction or order ID"
// @Param        status         query string false "Filter by status" Enums(pending, completed, failed, refunded)
// @Param        payment_method query string false "Filter by method" Enums(credit_card, paypal, bank_transfer)
// @Param        order_id       query string false "Filter by order" format(uuid)
// @Param        page           query int    false "Page number" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[paymentapp.PaymentListResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter paymentapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	orderID, ok := h.ParseUUIDQuery(c, "order_id")
	if !ok {
		return
	}
	filter.OrderID = orderID

	result, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, result, result.Total, page, pageSize)
}

// Get godoc
// @ID           getPayment
// @Summary      Get payment
// @Tags         admin-payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Record godoc
// @ID           recordPayment
// @Summary      Record payment
// @Description  Amount defaults to the order total. Transaction IDs are unique when given.
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.RecordPaymentRequest true "Payment"
// @Success      201 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req paymentapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.paymentService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// UpdateStatus godoc
// @ID           updatePaymentStatus
// @Summary      Set payment status
// @Tags         admin-payments
// @Accept       json
// @Produce      json
// @Param        id      path string                                 true "Payment ID" format(uuid)
// @Param        request body paymentapp.UpdatePaymentStatusRequest true "New status"
// @Success      200 {object} APIResponse[paymentapp.PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req paymentapp.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.paymentService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// ListByOrder godoc
// @ID           listOrderPayments
// @Summary      Payments of an order
// @Tags         admin-payments
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[[]paymentapp.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	orderID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
