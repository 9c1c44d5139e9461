package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopdesk/backend/internal/domain/order"
	"github.com/shopdesk/backend/internal/domain/payment"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator: field names follow the json
// (or form) tag and the order_status, payment_status and payment_method
// tags are registered. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		RegisterDomainValidations(v)
	})
}

// RegisterDomainValidations registers the enum tags on v
func RegisterDomainValidations(v *validator.Validate) {
	_ = v.RegisterValidation("order_status", stringRule(func(s string) bool {
		return order.Status(s).IsValid()
	}))
	_ = v.RegisterValidation("payment_status", stringRule(func(s string) bool {
		return payment.Status(s).IsValid()
	}))
	_ = v.RegisterValidation("payment_method", stringRule(func(s string) bool {
		return payment.Method(s).IsValid()
	}))
}

func stringRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	}
}

// FormatValidationErrors formats binding errors into a VALIDATION_ERROR response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 response for a binding error.
// Malformed bodies yield INVALID_JSON and bodies cut off by BodyLimit 413.
func HandleValidationError(c *gin.Context, err error) {
	if isBodyTooLarge(err) {
		abortTooLarge(c)
		return
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidJSON, "Malformed request body", GetRequestID(c)))
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " item(s)"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "url":
		return "Invalid URL format"
	case "order_status":
		return "Must be one of: " + joinValues(order.AllStatuses())
	case "payment_status":
		return "Must be one of: " + joinValues(payment.AllStatuses())
	case "payment_method":
		return "Must be one of: " + joinValues(payment.AllMethods())
	default:
		return "Invalid value"
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
