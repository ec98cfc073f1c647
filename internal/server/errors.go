package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	chatdomain "github.com/robmoran/proposalkit/internal/chat/domain"
	proposaldomain "github.com/robmoran/proposalkit/internal/proposal/domain"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

type apiError struct {
	status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError translates service errors into a JSON error response.
// Unrecognized errors become opaque 500s so internal detail never leaks.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	message := "internal error"

	switch {
	case errors.Is(err, proposaldomain.ErrInvalidPath),
		errors.Is(err, proposaldomain.ErrInvalidField):
		status = http.StatusBadRequest
		code = unwrapCode(err)
		message = err.Error()
	case errors.Is(err, chatdomain.ErrEmptyMessage):
		status = http.StatusBadRequest
		code = chatdomain.ErrEmptyMessage.Error()
		message = "message is required"
	case errors.Is(err, proposaldomain.ErrInvalidID),
		errors.Is(err, proposaldomain.ErrProposalNotFound),
		errors.Is(err, chatdomain.ErrInvalidProposal),
		errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		message = "resource not found"
	case errors.Is(err, ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
		code = ErrServiceUnavailable.Error()
		message = "service unavailable"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		status:  status,
		Code:    code,
		Message: message,
	}})
}

func unwrapCode(err error) string {
	switch {
	case errors.Is(err, proposaldomain.ErrInvalidPath):
		return proposaldomain.ErrInvalidPath.Error()
	case errors.Is(err, proposaldomain.ErrInvalidField):
		return proposaldomain.ErrInvalidField.Error()
	default:
		return "invalid_request"
	}
}
