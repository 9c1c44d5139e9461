package catalog

import (
	"context"

	"github.com/google/uuid"
	appevent "github.com/shopdesk/backend/internal/application/event"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cache invalidation and the live feed
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.Description, valueobject.NewMoney(req.Price), req.StockQuantity, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if req.ImageURL != "" {
		if err := product.Update(product.Name, product.Description, req.ImageURL, product.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	appevent.Publish(ctx, s.eventPublisher, s.logger, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetActiveByID retrieves a product visible in the public catalog
func (s *ProductService) GetActiveByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewNotFoundError("product", id)
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with search, category, stock and price filters
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := pageFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}
	if filter.LowStock != nil && *filter.LowStock {
		domainFilter.Filters["low_stock"] = catalog.DefaultLowStockThreshold
	}
	if filter.MinPrice != nil {
		domainFilter.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		domainFilter.Filters["max_price"] = *filter.MaxPrice
	}
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, description, imageURL, categoryID := product.Name, product.Description, product.ImageURL, product.CategoryID
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	if req.CategoryID != nil && *req.CategoryID != categoryID {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		categoryID = *req.CategoryID
	}
	if err := product.Update(name, description, imageURL, categoryID); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoney(*req.Price)); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	appevent.Publish(ctx, s.eventPublisher, s.logger, product)

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateStock sets or adjusts the recorded stock
func (s *ProductService) UpdateStock(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*ProductResponse, error) {
	if (req.StockQuantity == nil) == (req.Delta == nil) {
		return nil, shared.NewFieldValidationError("stock_quantity", "Provide exactly one of stock_quantity or delta")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StockQuantity != nil {
		err = product.SetStock(*req.StockQuantity)
	} else {
		err = product.AdjustStock(*req.Delta)
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	appevent.Publish(ctx, s.eventPublisher, s.logger, product)

	s.logger.Info("Product stock updated",
		zap.String("product_id", product.ID.String()),
		zap.Int("stock_quantity", product.StockQuantity))

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product that no order line references
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.productRepo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewConflictError("product_id", "Product is referenced by orders; deactivate it instead")
	}

	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if shared.IsNotFound(err) {
			return shared.NewFieldValidationError("category_id", "Category not found")
		}
		return err
	}
	return nil
}
