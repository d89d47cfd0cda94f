package apperrors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorMiddleware converts errors attached to the gin context into a JSON
// response with the mapped status code. Handlers that have not already
// written a response can c.Error an *Error instead of rendering it inline.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr, ok := err.(*Error)
			if !ok {
				appErr = New(http.StatusInternalServerError, "Internal server error", err)
			}
			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
