package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/customer"
)

// CreateCustomerRequest is used by both self sign-up and staff creation
type CreateCustomerRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=150"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	FirstName   string `json:"first_name" binding:"max=150"`
	LastName    string `json:"last_name" binding:"max=150"`
	PhoneNumber string `json:"phone_number" binding:"max=20"`
	Address     string `json:"address" binding:"max=1000"`
}

// UpdateCustomerRequest is a partial update of a customer
type UpdateCustomerRequest struct {
	Email       *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" binding:"omitempty,max=150"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Address     *string `json:"address" binding:"omitempty,max=1000"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Username:    c.Username,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		FullName:    c.FullName(),
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		IsActive:    c.IsActive,
		DateJoined:  c.DateJoined,
		UpdatedAt:   c.UpdatedAt,
	}
}
