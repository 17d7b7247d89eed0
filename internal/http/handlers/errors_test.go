package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain"
)

func respondWith(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondDomainError(c, err)
	return w
}

func TestRespondDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError{Field: "status", Msg: "unknown status"}, http.StatusBadRequest},
		{"invalid state", domain.InvalidStateError{Msg: "Only draft trips can be dispatched"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "Trip"}, http.StatusNotFound},
		{"conflict", domain.ConflictError{Resource: "Vehicle", Msg: "license plate already registered"}, http.StatusConflict},
		{"unauthenticated", domain.UnauthenticatedError{Msg: "Invalid email or password"}, http.StatusUnauthorized},
		{"unauthorized", domain.UnauthorizedError{Msg: "Insufficient role"}, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := respondWith(t, tc.err)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestInternalErrorMessageSuppressedInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondDomainError(c, errors.New("password hash leaked into logs"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "password hash") {
		t.Fatalf("internal message leaked: %s", body)
	}
	if !strings.Contains(body, "Something went wrong") {
		t.Fatalf("expected generic message, got %s", body)
	}
}
