package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain/models"
	"fleetflow/internal/services"
)

type UserHandler struct {
	Users services.UserService
}

// GET /api/users
func (h UserHandler) List(c *gin.Context) {
	users, err := h.Users.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (h UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.Users.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserPayload struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER DISPATCHER VIEWER"`
}

// PATCH /api/users/:id
func (h UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload updateUserPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	in := services.UpdateUserInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	}
	if payload.Role != nil {
		role := models.Role(*payload.Role)
		in.Role = &role
	}

	user, err := h.Users.Update(id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func (h UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
