package valueobject

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for new hashes
var PasswordCost = bcrypt.DefaultCost

const minPasswordLength = 8

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.@+\-]{3,150}$`)
	hasLetter     = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit      = regexp.MustCompile(`[0-9]`)
)

// Password policy errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooWeak  = errors.New("password must contain at least one letter and one number")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidUsername  = errors.New("username must be 3-150 characters of letters, digits and @.+-_")
)

// PasswordHash is a bcrypt hash; the clear text is never kept
type PasswordHash string

// NewPasswordHash validates and hashes a clear-text password
func NewPasswordHash(password string) (PasswordHash, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return "", ErrPasswordTooWeak
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return PasswordHash(hash), nil
}

// Matches reports whether password hashes to h
func (h PasswordHash) Matches(password string) bool {
	if h == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(password)) == nil
}

// NormalizeEmail lower-cases and validates an email address
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ValidateUsername checks the login name format
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}
