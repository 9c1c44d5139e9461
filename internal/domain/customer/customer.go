package customer

import (
	"strings"
	"time"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
)

// Customer is a shopper account. Orders belong to customers.
type Customer struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	PasswordHash valueobject.PasswordHash
	FirstName    string
	LastName     string
	PhoneNumber  string
	Address      string
	IsActive     bool
	DateJoined   time.Time
}

// Profile holds the editable contact fields
type Profile struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// NewCustomer registers a customer, hashing the password
func NewCustomer(username, email, password string, profile Profile) (*Customer, error) {
	username = strings.TrimSpace(username)
	if err := valueobject.ValidateUsername(username); err != nil {
		return nil, shared.NewFieldValidationError("username", err.Error())
	}
	normalized, err := valueobject.NormalizeEmail(email)
	if err != nil {
		return nil, shared.NewFieldValidationError("email", err.Error())
	}
	hash, err := valueobject.NewPasswordHash(password)
	if err != nil {
		return nil, shared.NewFieldValidationError("password", err.Error())
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             normalized,
		PasswordHash:      hash,
		IsActive:          true,
	}
	c.DateJoined = c.CreatedAt
	c.applyProfile(profile)
	return c, nil
}

// UpdateProfile replaces the contact fields
func (c *Customer) UpdateProfile(profile Profile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	c.applyProfile(profile)
	c.Touch()
	return nil
}

// ChangeEmail sets a new email address
func (c *Customer) ChangeEmail(email string) error {
	normalized, err := valueobject.NormalizeEmail(email)
	if err != nil {
		return shared.NewFieldValidationError("email", err.Error())
	}
	c.Email = normalized
	c.Touch()
	return nil
}

// SetPassword replaces the password hash
func (c *Customer) SetPassword(password string) error {
	hash, err := valueobject.NewPasswordHash(password)
	if err != nil {
		return shared.NewFieldValidationError("password", err.Error())
	}
	c.PasswordHash = hash
	c.Touch()
	return nil
}

// CheckPassword reports whether password matches the stored hash
func (c *Customer) CheckPassword(password string) bool {
	return c.PasswordHash.Matches(password)
}

// Activate re-enables a deactivated account
func (c *Customer) Activate() {
	if !c.IsActive {
		c.IsActive = true
		c.Touch()
	}
}

// Deactivate blocks logins and cart operations
func (c *Customer) Deactivate() {
	if c.IsActive {
		c.IsActive = false
		c.Touch()
	}
}

// FullName returns "First Last", falling back to the username
func (c *Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Username
	}
	return name
}

func (c *Customer) applyProfile(p Profile) {
	c.FirstName = strings.TrimSpace(p.FirstName)
	c.LastName = strings.TrimSpace(p.LastName)
	c.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	c.Address = strings.TrimSpace(p.Address)
}

func validateProfile(p Profile) error {
	if len(p.FirstName) > 150 {
		return shared.NewFieldValidationError("first_name", "First name cannot exceed 150 characters")
	}
	if len(p.LastName) > 150 {
		return shared.NewFieldValidationError("last_name", "Last name cannot exceed 150 characters")
	}
	if len(p.PhoneNumber) > 20 {
		return shared.NewFieldValidationError("phone_number", "Phone number cannot exceed 20 characters")
	}
	return nil
}
