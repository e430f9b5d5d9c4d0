package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes.
const (
	CodeBadRequest   = "bad_request"
	CodeMissingInput = "missing_input"
	CodeBadImage     = "bad_image"
	CodeTooLarge     = "payload_too_large"
	CodeRateLimited  = "rate_limited"
	CodeUpstream     = "upstream_failed"
)

// RespondError writes an error envelope and aborts the chain.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// HealthCheck answers liveness probes.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
