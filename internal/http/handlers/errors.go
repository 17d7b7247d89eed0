package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fleetflow/internal/domain"
	"fleetflow/internal/http/middleware"
	"fleetflow/internal/utils"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Unknown errors
// become a 500 with the message suppressed outside debug mode.
func RespondDomainError(c *gin.Context, err error) {
	var bindErrs validator.ValidationErrors
	if errors.As(err, &bindErrs) {
		respondError(c, http.StatusBadRequest, "validation_error", "Request validation failed", fieldMessages(bindErrs))
		return
	}

	var vErr domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		details := any(nil)
		if len(vErr.Details) > 0 {
			details = vErr.Details
		}
		respondError(c, http.StatusBadRequest, "validation_error", vErr.Error(), details)
	case domain.IsInvalidState(err):
		respondError(c, http.StatusBadRequest, "invalid_state", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsUnauthenticated(err):
		respondError(c, http.StatusUnauthorized, "unauthenticated", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", "internal_error", err)
		msg := "Something went wrong"
		if gin.Mode() != gin.ReleaseMode {
			msg = err.Error()
		}
		respondError(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}

func fieldMessages(errs validator.ValidationErrors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out = append(out, field+" is required")
		case "email":
			out = append(out, field+" must be a valid email")
		case "min":
			out = append(out, field+" must be at least "+fe.Param())
		case "max":
			out = append(out, field+" must be at most "+fe.Param())
		case "gt":
			out = append(out, field+" must be greater than "+fe.Param())
		case "gte":
			out = append(out, field+" must be at least "+fe.Param())
		case "oneof":
			out = append(out, field+" must be one of: "+fe.Param())
		default:
			out = append(out, field+" is invalid")
		}
	}
	return out
}
