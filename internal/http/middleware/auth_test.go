package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/services"
)

func testAuthService() services.AuthService {
	return services.AuthService{JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}
}

func authRouter(t *testing.T, svc services.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(svc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": CallerID(c), "role": CallerRole(c)})
	})
	r.GET("/secure", handlers...)
	return r
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r := authRouter(t, testAuthService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r := authRouter(t, testAuthService())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	svc := testAuthService()
	forged := services.AuthService{JWTSecret: []byte("other-secret"), TokenTTL: time.Hour}
	token, err := forged.IssueToken(models.User{ID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	r := authRouter(t, svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	svc := testAuthService()
	token, err := svc.IssueToken(models.User{ID: 42, Role: models.RoleDispatcher})
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	r := authRouter(t, svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestRequireRolesGating(t *testing.T) {
	svc := testAuthService()

	cases := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleDispatcher, http.StatusOK},
		{models.RoleManager, http.StatusForbidden},
		{models.RoleViewer, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			token, err := svc.IssueToken(models.User{ID: 1, Role: tc.role})
			if err != nil {
				t.Fatalf("issue token error: %v", err)
			}

			r := authRouter(t, svc, RequireRoles("ADMIN", "DISPATCHER"))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, w.Code)
			}
		})
	}
}
