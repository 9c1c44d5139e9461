package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reviewapp "github.com/shopdesk/backend/internal/application/review"
)

// ReviewUseCase is the review service as seen by the HTTP layer
type ReviewUseCase interface {
	Submit(ctx context.Context, customerID, productID uuid.UUID, req reviewapp.SubmitReviewRequest) (*reviewapp.ReviewResponse, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, filter reviewapp.ReviewListFilter) (*reviewapp.ProductReviewsResponse, error)
}

// ReviewHandler handles product reviews
type ReviewHandler struct {
	BaseHandler
	reviewService ReviewUseCase
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// @ID           listProductReviews
// @Summary      List product reviews
// @Description  Reviews of an active product with its average rating
// @Tags         catalog
// @Produce      json
// @Param        id        path  string true  "Product ID" format(uuid)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[reviewapp.ProductReviewsResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var filter reviewapp.ReviewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	reviews, err := h.reviewService.ListByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, reviews, reviews.ReviewCount, page, pageSize)
}

// Submit godoc
// @ID           submitProductReview
// @Summary      Review a product
// @Description  One review per customer and product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                          true "Product ID" format(uuid)
// @Param        request body reviewapp.SubmitReviewRequest true "Rating and comment"
// @Success      201 {object} APIResponse[reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	customerID, ok := h.Principal(c)
	if !ok {
		return
	}
	productID, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reviewapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), customerID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}
