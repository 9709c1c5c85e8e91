// Package response writes the API's JSON envelopes.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the envelope.
const (
	CodeInvalidBody  = "invalid_body"
	CodeNotFound     = "not_found"
	CodeConflict     = "revision_mismatch"
	CodeReadOnly     = "read_only"
	CodeStore        = "store_error"
	CodeRender       = "render_error"
	CodeInvalidParam = "invalid_param"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
