package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/utils"
)

// BindJSONOrError ensures the body is present and parsable. Binding tag
// failures go through RespondDomainError for per-field messages.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "Request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondDomainError(c, err)
		return false
	}
	return true
}

// idParam parses the :id path segment. Responds 400 and returns false on
// malformed input.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid id parameter", nil)
		return 0, false
	}
	return id, true
}

// int64Query parses an optional numeric query param, nil when absent.
func int64Query(c *gin.Context, name string) *int64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

// dateQuery parses an optional date query param, nil when absent or invalid.
func dateQuery(c *gin.Context, name string) *time.Time {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &t
}

func sendAttachment(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
