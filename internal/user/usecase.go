package user

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/user/dto"
)

type UseCase interface {
	Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error)
	Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error

	CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error)
	UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
	DeactivateUser(ctx context.Context, id int64) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *model.User) (string, error)
}
