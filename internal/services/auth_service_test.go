package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
)

func userRows(id int64, email, passwordHash string, role models.Role) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "role", "created_at", "updated_at",
	}).AddRow(id, "Alex", email, passwordHash, string(role), testNow, testNow)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("alex@fleet.io").
		WillReturnRows(userRows(1, "alex@fleet.io", string(hash), models.RoleAdmin))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, JWTSecret: []byte("s"), TokenTTL: time.Hour}
	_, err = svc.Login("alex@fleet.io", "wrong-password")
	if !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
	if err.Error() != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("nobody@fleet.io").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, JWTSecret: []byte("s"), TokenTTL: time.Hour}
	_, err = svc.Login("nobody@fleet.io", "whatever")
	if !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
	// unknown email and wrong password are indistinguishable
	if err.Error() != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoginNormalizesEmailCase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("alex@fleet.io").
		WillReturnRows(userRows(1, "alex@fleet.io", string(hash), models.RoleManager))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, JWTSecret: []byte("s"), TokenTTL: time.Hour}
	result, err := svc.Login("  Alex@Fleet.IO ", "secret-password")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := AuthService{JWTSecret: []byte("round-trip-secret"), TokenTTL: time.Hour}

	token, err := svc.IssueToken(models.User{ID: 42, Role: models.RoleDispatcher})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	rc, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if rc.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", rc.UserID)
	}
	if rc.Role != string(models.RoleDispatcher) {
		t.Fatalf("expected DISPATCHER role, got %s", rc.Role)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := AuthService{JWTSecret: []byte("round-trip-secret"), TokenTTL: time.Hour}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(1),
		"role":    string(models.RoleViewer),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString(svc.JWTSecret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := svc.VerifyToken(token); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated error for expired token, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("alex@fleet.io").
		WillReturnRows(userRows(1, "alex@fleet.io", "hash", models.RoleAdmin))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, JWTSecret: []byte("s"), TokenTTL: time.Hour}
	_, err = svc.Register(RegisterInput{Name: "Alex", Email: "alex@fleet.io", Password: "password123", Role: models.RoleViewer})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
