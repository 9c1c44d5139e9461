package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is refused up front with 413; chunked bodies are wrapped so the
// read fails once the cap is crossed, which HandleValidationError turns
// into the same 413. A non-positive maxBytes disables the check.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortTooLarge(c)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// isBodyTooLarge reports whether err came from a body read past the cap
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func abortTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
		dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size", GetRequestID(c)))
}
