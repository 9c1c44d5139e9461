package dto

import "github.com/shopdesk/backend/internal/domain/shared"

// Response is the envelope of every JSON body the API writes. Exactly one
// of Data and Error is set; Meta accompanies paginated lists.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Field     string             `json:"field,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail is one failed binding rule
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta wraps one page of a list
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	p := shared.NewPaginated[struct{}](nil, total, page, pageSize)
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: p.Total, Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages},
	}
}

// NewErrorResponseWithRequestID builds an error envelope; requestID is
// echoed so clients can quote it in support requests
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{Error: &ErrorInfo{Code: code, Message: message, RequestID: requestID}}
}

// NewFieldErrorResponse is an error envelope blaming a single input field
func NewFieldErrorResponse(code, message, field, requestID string) Response {
	resp := NewErrorResponseWithRequestID(code, message, requestID)
	resp.Error.Field = field
	return resp
}

// NewValidationErrorResponse reports every failed rule under
// VALIDATION_ERROR. Field names the first failure.
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	if len(details) > 0 {
		resp.Error.Field = details[0].Field
	}
	return resp
}
