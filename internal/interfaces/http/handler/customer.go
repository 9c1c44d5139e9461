package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	customerapp "github.com/shopdesk/backend/internal/application/customer"
)

// CustomerUseCase is the customer service as seen by the HTTP layer
type CustomerUseCase interface {
	Register(ctx context.Context, req customerapp.CreateCustomerRequest) (*customerapp.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*customerapp.CustomerResponse, error)
	List(ctx context.Context, filter customerapp.CustomerListFilter) ([]customerapp.CustomerResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req customerapp.UpdateCustomerRequest) (*customerapp.CustomerResponse, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*customerapp.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerHandler handles staff customer administration
type CustomerHandler struct {
	BaseHandler
	customerService CustomerUseCase
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         admin-customers
// @Produce      json
// @Param        search    query string false "Search username, email and names"
// @Param        is_active query bool   false "Filter by active flag"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var filter customerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// Get godoc
// @ID           getCustomer
// @Summary      Get customer
// @Tags         admin-customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Create godoc
// @ID           createCustomer
// @Summary      Create customer
// @Tags         admin-customers
// @Accept       json
// @Produce      json
// @Param        request body customerapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update customer
// @Tags         admin-customers
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Customer ID" format(uuid)
// @Param        request body customerapp.UpdateCustomerRequest true "Changes"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req customerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Activate godoc
// @ID           activateCustomer
// @Summary      Activate customer
// @Tags         admin-customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id}/activate [post]
func (h *CustomerHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Deactivate godoc
// @ID           deactivateCustomer
// @Summary      Deactivate customer
// @Description  Deactivated customers can no longer log in
// @Tags         admin-customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id}/deactivate [post]
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *CustomerHandler) setActive(c *gin.Context, active bool) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.SetActive(c.Request.Context(), id, active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete customer
// @Description  Customers with orders cannot be deleted
// @Tags         admin-customers
// @Param        id path string true "Customer ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
