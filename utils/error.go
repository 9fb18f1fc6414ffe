package utils

import (
	"net/http"

	"eventra/services/fault"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONFault maps a domain error onto its HTTP status and sends it. Internal
// faults are logged with their cause and reported generically.
func JSONFault(c *gin.Context, err error) {
	kind := fault.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		GetLogger().Error("internal error", zap.Error(err))
		c.JSON(status, ErrorResponse{Message: "Internal Server Error", Code: string(fault.Internal)})
		return
	}
	c.JSON(status, ErrorResponse{Message: err.Error(), Code: string(kind)})
}

func statusForKind(kind fault.Kind) int {
	switch kind {
	case fault.Unauthenticated:
		return http.StatusUnauthorized
	case fault.Forbidden:
		return http.StatusForbidden
	case fault.NotFound:
		return http.StatusNotFound
	case fault.InvalidInput:
		return http.StatusBadRequest
	case fault.InvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
