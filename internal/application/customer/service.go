package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/customer"
	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles customer account operations
type Service struct {
	repo   customer.Repository
	logger *zap.Logger
}

// NewService creates a new customer Service
func NewService(repo customer.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Register creates a customer account. Username and email must be unused.
func (s *Service) Register(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	c, err := customer.NewCustomer(req.Username, req.Email, req.Password, customer.Profile{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, c.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("username", "A customer with this username already exists")
	}
	exists, err = s.repo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("email", "A customer with this email already exists")
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Customer registered",
		zap.String("customer_id", c.ID.String()),
		zap.String("username", c.Username))

	response := ToCustomerResponse(c)
	return &response, nil
}

// GetByID retrieves a customer
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(c)
	return &response, nil
}

// List lists customers, newest first
func (s *Service) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "date_joined"
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	customers, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}

// Update applies a partial update
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := customer.Profile{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if err := c.UpdateProfile(profile); err != nil {
		return nil, err
	}

	if req.Email != nil {
		previous := c.Email
		if err := c.ChangeEmail(*req.Email); err != nil {
			return nil, err
		}
		if c.Email != previous {
			exists, err := s.repo.ExistsByEmail(ctx, c.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewConflictError("email", "A customer with this email already exists")
			}
		}
	}
	if req.Password != nil {
		if err := c.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(c)
	return &response, nil
}

// SetActive activates or deactivates an account
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		c.Activate()
	} else {
		c.Deactivate()
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(c)
	return &response, nil
}

// Delete removes a customer that has no orders
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	hasOrders, err := s.repo.HasOrders(ctx, id)
	if err != nil {
		return err
	}
	if hasOrders {
		return shared.NewConflictError("customer_id", "Cannot delete a customer with orders; deactivate the account instead")
	}
	return s.repo.Delete(ctx, id)
}
