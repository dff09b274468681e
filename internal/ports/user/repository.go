package user

import (
	"context"

	"github.com/gofrs/uuid"

	"yatube/internal/core/user"
)

// UserRepository stores and loads users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SignupInput is the registration form.
type SignupInput struct {
	FirstName       string `form:"first_name" validate:"max=150"`
	LastName        string `form:"last_name" validate:"max=150"`
	Username        string `form:"username" validate:"required,max=150,username"`
	Email           string `form:"email" validate:"required,email,max=254"`
	Password        string `form:"password1" validate:"required,min=8,max=128"`
	PasswordConfirm string `form:"password2" validate:"required,eqfield=Password"`
}

type LoginResponse struct {
	Token     string
	ExpiresAt int64
	User      *user.User
}
