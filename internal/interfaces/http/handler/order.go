package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/shopdesk/backend/internal/application/order"
)

// OrderUseCase is the order service as seen by the HTTP layer
type OrderUseCase interface {
	GetByID(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)
	GetForCustomer(ctx context.Context, customerID, id uuid.UUID) (*orderapp.OrderResponse, error)
	List(ctx context.Context, filter orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID, filter orderapp.OrderListFilter) ([]orderapp.OrderResponse, int64, error)
	StatusSummary(ctx context.Context) (*orderapp.StatusSummaryResponse, error)
	Create(ctx context.Context, req orderapp.CreateOrderRequest) (*orderapp.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req orderapp.UpdateStatusRequest) (*orderapp.StatusUpdateResponse, error)
}

// OrderHandler serves order history to customers and order management to
// staff
type OrderHandler struct {
	BaseHandler
	orderService OrderUseCase
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService OrderUseCase) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// bindOrderFilter binds the list query including the UUID filters that
// form binding cannot decode
func bindOrderFilter(h *BaseHandler, c *gin.Context) (orderapp.OrderListFilter, bool) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return filter, false
	}
	customerID, ok := h.ParseUUIDQuery(c, "customer_id")
	if !ok {
		return filter, false
	}
	productID, ok := h.ParseUUIDQuery(c, "product_id")
	if !ok {
		return filter, false
	}
	filter.CustomerID = customerID
	filter.ProductID = productID
	return filter, true
}

// ListMine godoc
// @ID           listMyOrders
// @Summary      List my orders
// @Description  Orders of the caller, newest first
// @Tags         orders
// @Produce      json
// @Param        status    query string false "Filter by status" Enums(pending, processing, shipped, delivered, cancelled)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	filter, ok := bindOrderFilter(&h.BaseHandler, c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.ListForCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// GetMine godoc
// @ID           getMyOrder
// @Summary      Get my order
// @Description  Orders of other customers are reported as not found
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetMine(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetForCustomer(c.Request.Context(), customerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Param        search      query string false "Search by order ID, username or email"
// @Param        status      query string false "Filter by status" Enums(pending, processing, shipped, delivered, cancelled)
// @Param        customer_id query string false "Filter by customer" format(uuid)
// @Param        product_id  query string false "Orders containing the product" format(uuid)
// @Param        from        query string false "Created on or after (YYYY-MM-DD)"
// @Param        to          query string false "Created on or before (YYYY-MM-DD)"
// @Param        order_by    query string false "Sort field" Enums(created_at, total_amount, status)
// @Param        order_dir   query string false "Sort direction" Enums(asc, desc)
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	filter, ok := bindOrderFilter(&h.BaseHandler, c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get godoc
// @ID           getOrder
// @Summary      Get order
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[orderapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create godoc
// @ID           createOrder
// @Summary      Create order
// @Description  Staff-entered order for a customer. Stock is validated and decremented.
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        request body orderapp.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[orderapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Set order status
// @Description  Any of the five statuses may be set; the response reports whether the move follows the lifecycle
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Order ID" format(uuid)
// @Param        request body orderapp.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[orderapp.StatusUpdateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Summary godoc
// @ID           orderStatusSummary
// @Summary      Order counts per status
// @Tags         admin-orders
// @Produce      json
// @Success      200 {object} APIResponse[orderapp.StatusSummaryResponse]
// @Security     BearerAuth
// @Router       /admin/orders/summary [get]
func (h *OrderHandler) Summary(c *gin.Context) {
	summary, err := h.orderService.StatusSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
