package handler

import "github.com/shopdesk/backend/internal/interfaces/http/dto"

// Envelope shapes referenced by the swag annotations. Handlers build the
// actual bodies with the dto constructors; these types only describe them.
type (
	// APIResponse is the success envelope; T is the payload of the route
	APIResponse[T any] struct {
		Success bool           `json:"success" example:"true"`
		Data    T              `json:"data,omitempty"`
		Error   *dto.ErrorInfo `json:"error,omitempty"`
		Meta    *dto.Meta      `json:"meta,omitempty"`
	}

	// ErrorResponse is the failure envelope shared by every route
	ErrorResponse struct {
		Success bool           `json:"success" example:"false"`
		Error   *dto.ErrorInfo `json:"error"`
	}
)

// MessageData acknowledges an action that has no resource to return
type MessageData struct {
	Message string `json:"message" example:"Logged out"`
}
