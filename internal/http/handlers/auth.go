package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/http/middleware"
	"fleetflow/internal/services"
)

type AuthHandler struct {
	Auth  services.AuthService
	Users services.UserService
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER DISPATCHER VIEWER"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var payload registerPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	role := models.RoleViewer
	if payload.Role != "" {
		role = models.Role(payload.Role)
	}

	user, err := h.Auth.Register(services.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     role,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var payload loginPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	result, err := h.Auth.Login(payload.Email, payload.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/auth/me
func (h AuthHandler) Me(c *gin.Context) {
	user, err := h.Users.Get(middleware.CallerID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
