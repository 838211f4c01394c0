package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/user"
	"github.com/fekuna/omnipos-restaurant-service/internal/user/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var errInvalidCredentials = apperror.Unauthorized("Invalid credentials")

type userUseCase struct {
	repo   user.Repository
	tokens user.TokenIssuer
	logger logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tokens user.TokenIssuer, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.LoginResult, error) {
	u, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := uc.tokens.Generate(u)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{AccessToken: token, User: u}, nil
}

// Register creates a self-service account. Only admins hand out other roles.
func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*model.User, error) {
	return uc.create(ctx, input.Email, input.Password, input.FirstName, input.LastName, model.RoleWaiter)
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	role := input.Role
	if role == "" {
		role = model.RoleWaiter
	}
	if !role.Valid() {
		return nil, apperror.Validation("invalid role")
	}
	return uc.create(ctx, input.Email, input.Password, input.FirstName, input.LastName, role)
}

// EnsureAdmin creates the admin account when no user holds that email yet.
func (uc *userUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, err = uc.create(ctx, email, password, "Admin", "User", model.RoleAdmin)
	if apperror.Is(err, apperror.KindConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	uc.logger.Info("seeded admin user", zap.String("email", email))
	return nil
}

func (uc *userUseCase) create(ctx context.Context, email, password, firstName, lastName string, role model.Role) (*model.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		IsActive:     true,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("User", id)
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error) {
	if filters.Role != nil && !filters.Role.Valid() {
		return nil, 0, apperror.Validation("invalid role")
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	u, err := uc.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		u.Email = strings.TrimSpace(*input.Email)
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperror.Validation("invalid role")
		}
		u.Role = *input.Role
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) DeactivateUser(ctx context.Context, id int64) (*model.User, error) {
	inactive := false
	return uc.UpdateUser(ctx, &dto.UpdateUserInput{ID: id, IsActive: &inactive})
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("User", id)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperror.Validation("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
