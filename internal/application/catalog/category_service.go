package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/catalog"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, category.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories ordered by name
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := pageFilter(filter.Page, filter.PageSize, "name", "asc", filter.Search)

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, total, nil
}

// Update updates an existing category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := category.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := category.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, category.Name, category.ID); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete deletes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	hasProducts, err := s.categoryRepo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewConflictError("category_id", "Cannot delete a category that still has products")
	}

	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return shared.NewConflictError("name", "Category with this name already exists")
	}
	return nil
}
