package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/shopdesk/backend/internal/application/catalog"
)

// CategoryUseCase is the category service as seen by the HTTP layer
type CategoryUseCase interface {
	Create(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.CategoryResponse, error)
	List(ctx context.Context, filter catalogapp.CategoryListFilter) ([]catalogapp.CategoryResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateCategoryRequest) (*catalogapp.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductUseCase is the product service as seen by the HTTP layer
type ProductUseCase interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	GetActiveByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	UpdateStock(ctx context.Context, id uuid.UUID, req catalogapp.UpdateStockRequest) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogHandler serves categories and products. The public routes only
// ever expose active products.
type CatalogHandler struct {
	BaseHandler
	categories CategoryUseCase
	products   ProductUseCase
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(categories CategoryUseCase, products ProductUseCase) *CatalogHandler {
	return &CatalogHandler{
		categories: categories,
		products:   products,
	}
}

// ListCategories godoc
// @ID           listCategories
// @Summary      List categories
// @Description  Paginated list of product categories
// @Tags         catalog
// @Produce      json
// @Param        search    query string false "Search by name"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var filter catalogapp.CategoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	categories, total, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// GetCategory godoc
// @ID           getCategory
// @Summary      Get category
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// CreateCategory godoc
// @ID           createCategory
// @Summary      Create category
// @Description  Category names are unique
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category"
// @Success      201 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// UpdateCategory godoc
// @ID           updateCategory
// @Summary      Update category
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Category ID" format(uuid)
// @Param        request body catalogapp.UpdateCategoryRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// DeleteCategory godoc
// @ID           deleteCategory
// @Summary      Delete category
// @Description  Fails with 409 while products still reference the category
// @Tags         admin-catalog
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Description  Active products only. Supports search, category, stock and price filters.
// @Tags         catalog
// @Produce      json
// @Param        search      query string false "Search name and description"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        in_stock    query bool   false "Only products in stock"
// @Param        min_price   query number false "Minimum price"
// @Param        max_price   query number false "Maximum price"
// @Param        order_by    query string false "Sort field" Enums(name, price, stock_quantity, created_at)
// @Param        order_dir   query string false "Sort direction" Enums(asc, desc)
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	h.listProducts(c, true)
}

// AdminListProducts godoc
// @ID           adminListProducts
// @Summary      List products (staff)
// @Description  Includes inactive products and supports the low_stock filter
// @Tags         admin-catalog
// @Produce      json
// @Param        search      query string false "Search name and description"
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        in_stock    query bool   false "Only products in stock"
// @Param        low_stock   query bool   false "Only products below the low stock threshold"
// @Param        page        query int    false "Page number" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *CatalogHandler) AdminListProducts(c *gin.Context) {
	h.listProducts(c, false)
}

func (h *CatalogHandler) listProducts(c *gin.Context, activeOnly bool) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	categoryID, ok := h.ParseUUIDQuery(c, "category_id")
	if !ok {
		return
	}
	filter.CategoryID = categoryID
	filter.ActiveOnly = activeOnly

	products, total, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// GetProduct godoc
// @ID           getProduct
// @Summary      Get product
// @Description  Inactive products are reported as not found
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	h.getProduct(c, h.products.GetActiveByID)
}

// AdminGetProduct godoc
// @ID           adminGetProduct
// @Summary      Get product (staff)
// @Tags         admin-catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [get]
func (h *CatalogHandler) AdminGetProduct(c *gin.Context) {
	h.getProduct(c, h.products.GetByID)
}

func (h *CatalogHandler) getProduct(c *gin.Context, get func(context.Context, uuid.UUID) (*catalogapp.ProductResponse, error)) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// CreateProduct godoc
// @ID           createProduct
// @Summary      Create product
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct godoc
// @ID           updateProduct
// @Summary      Update product
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                           true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdateStock godoc
// @ID           updateProductStock
// @Summary      Set or adjust product stock
// @Description  Either stock_quantity (absolute) or delta (relative) must be given
// @Tags         admin-catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateStockRequest true "Stock change"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/stock [put]
func (h *CatalogHandler) UpdateStock(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.products.UpdateStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct godoc
// @ID           deleteProduct
// @Summary      Delete product
// @Description  Fails with 409 while orders reference the product
// @Tags         admin-catalog
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
