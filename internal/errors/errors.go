package errors

import (
	"net/http"

	"codeberg.org/userhub/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// ErrorResponse is the wire shape every error reply uses
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

// writes the response and halts the request pipeline
func respond(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:      message,
		StatusCode: status,
	})
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}

	respond(c, http.StatusUnauthorized, message)
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Forbidden"
	}

	respond(c, http.StatusForbidden, message)
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "Resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	respond(c, http.StatusNotFound, message)
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}

	respond(c, http.StatusBadRequest, message)
}

// returns a 400 bad request error for body binding failures
func ValidationError(c *gin.Context, err error) {
	message := "Request validation failed"

	if err != nil {
		message = err.Error()
	}

	respond(c, http.StatusBadRequest, message)
}

// returns a 503 service unavailable error
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service unavailable"
	}

	respond(c, http.StatusServiceUnavailable, message)
}

// returns a 500 internal server error; the cause is logged, never exposed
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "An error occurred"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", c.GetString("request_id"),
	)

	respond(c, http.StatusInternalServerError, message)
}
