package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/shopdesk/backend/internal/application/order"
)

// CartUseCase is the cart service as seen by the HTTP layer
type CartUseCase interface {
	GetCart(ctx context.Context, customerID uuid.UUID) (*orderapp.CartResponse, error)
	AddItem(ctx context.Context, customerID uuid.UUID, req orderapp.AddItemRequest) (*orderapp.CartResponse, error)
	UpdateItem(ctx context.Context, customerID, itemID uuid.UUID, req orderapp.UpdateItemRequest) (*orderapp.CartResponse, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) (*orderapp.CartResponse, error)
	Checkout(ctx context.Context, customerID uuid.UUID, req orderapp.CheckoutRequest) (*orderapp.CheckoutResponse, error)
}

// CartHandler serves the authenticated customer's cart
type CartHandler struct {
	BaseHandler
	cartService CartUseCase
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService CartUseCase) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get godoc
// @ID           getCart
// @Summary      Get cart
// @Description  The pending order of the caller; empty when none exists
// @Tags         cart
// @Produce      json
// @Success      200 {object} APIResponse[orderapp.CartResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add product to cart
// @Description  Adding a product already in the cart increases its quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body orderapp.AddItemRequest true "Product and quantity"
// @Success      200 {object} APIResponse[orderapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req orderapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem godoc
// @ID           updateCartItem
// @Summary      Change cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        item_id path string                      true "Cart line ID" format(uuid)
// @Param        request body orderapp.UpdateItemRequest true "Quantity"
// @Success      200 {object} APIResponse[orderapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items/{item_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}
	var req orderapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), customerID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove cart line
// @Tags         cart
// @Produce      json
// @Param        item_id path string true "Cart line ID" format(uuid)
// @Success      200 {object} APIResponse[orderapp.CartResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), customerID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Checkout godoc
// @ID           checkout
// @Summary      Check out the cart
// @Description  Places the cart, or the order named by order_id. Stock is not rechecked. An empty body is allowed.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body     orderapp.CheckoutRequest false "Optional payment details"
// @Success      201     {object} APIResponse[orderapp.CheckoutResponse]
// @Failure      400     {object} ErrorResponse
// @Failure      409     {object} ErrorResponse
// @Failure      422     {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	var req orderapp.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	result, err := h.cartService.Checkout(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
