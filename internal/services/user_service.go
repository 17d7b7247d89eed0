package services

import (
	"fleetflow/internal/domain"
	"fleetflow/internal/domain/models"
	"fleetflow/internal/repositories"
	"fleetflow/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Users repositories.UserRepository
}

func (s UserService) List() ([]models.User, error) {
	return s.Users.List()
}

func (s UserService) Get(id int64) (models.User, error) {
	return s.Users.GetByID(id)
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *models.Role
}

func (s UserService) Update(id int64, in UpdateUserInput) (models.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return models.User{}, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		email := utils.NormalizeEmail(*in.Email)
		if email != u.Email {
			if existing, err := s.Users.GetByEmail(email); err == nil && existing.ID != id {
				return models.User{}, domain.ConflictError{Resource: "User", Msg: "email already in use"}
			} else if err != nil && !domain.IsNotFound(err) {
				return models.User{}, err
			}
		}
		u.Email = email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, domain.InternalError{Msg: "failed to hash password", Err: err}
		}
		u.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return models.User{}, domain.ValidationError{Field: "role", Msg: "unknown role"}
		}
		u.Role = *in.Role
	}

	if err := s.Users.Update(u); err != nil {
		return models.User{}, err
	}
	return s.Get(id)
}

func (s UserService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Users.Delete(id)
}
