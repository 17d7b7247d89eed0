package services

import (
	"time"

	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
	"fleetflow/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users     repositories.UserRepository
	JWTSecret []byte
	TokenTTL  time.Duration
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

func (s AuthService) Register(in RegisterInput) (models.User, error) {
	email := utils.NormalizeEmail(in.Email)
	if _, err := s.Users.GetByEmail(email); err == nil {
		return models.User{}, domain.ConflictError{Resource: "User", Msg: "email already registered"}
	} else if !domain.IsNotFound(err) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	id, err := s.Users.Create(models.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	})
	if err != nil {
		return models.User{}, err
	}
	return s.Users.GetByID(id)
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s AuthService) Login(email, password string) (LoginResult, error) {
	user, err := s.Users.GetByEmail(utils.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return LoginResult{}, domain.UnauthenticatedError{Msg: "Invalid email or password"}
		}
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, domain.UnauthenticatedError{Msg: "Invalid email or password"}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: user}, nil
}

func (s AuthService) IssueToken(user models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, nil
}

// VerifyToken parses and validates a bearer credential, returning the
// subject id and role it carries.
func (s AuthService) VerifyToken(tokenString string) (domain.RequestContext, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.RequestContext{}, domain.UnauthenticatedError{Msg: "Invalid or expired token", Err: err}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.RequestContext{}, domain.UnauthenticatedError{Msg: "Invalid token claims"}
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return domain.RequestContext{}, domain.UnauthenticatedError{Msg: "Invalid token claims"}
	}
	role, _ := claims["role"].(string)

	return domain.RequestContext{
		UserID: domain.ID(int64(userID)),
		Role:   role,
	}, nil
}
