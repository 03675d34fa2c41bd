package user

import (
	"context"

	"inkwell/internal/core/user"
)

// UserRepository stores and loads users.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

// DTOs for use cases
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

func NewUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
	}
}
