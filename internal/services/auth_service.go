// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	UserName string `json:"userName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type AuthResponse struct {
	User  models.UserSummary `json:"user"`
	Token string             `json:"-"`
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.UserSummary, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.UserName = strings.TrimSpace(req.UserName)
	if err := validate(req); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, utils.NewConflictError(i18n.KeyAuthUserExists)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	user := &models.User{
		UserName: req.UserName,
		Email:    req.Email,
		Role:     models.UserRoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError(i18n.KeyAuthUserExists)
		}
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewUnauthorizedError(i18n.KeyAuthInvalidCredentials)
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, utils.NewUnauthorizedError(i18n.KeyAuthInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID.String(), string(user.Role), user.Email, user.UserName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{User: user.Summary(), Token: token}, nil
}

// CheckAuth resolves a token to the current user. The user must still exist.
func (s *AuthService) CheckAuth(ctx context.Context, token string) (*models.UserSummary, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, utils.NewUnauthorizedError(i18n.KeyAuthUnauthorised)
	}

	id, err := utils.ParseID(claims.UserID, "id")
	if err != nil {
		return nil, utils.NewUnauthorizedError(i18n.KeyAuthUnauthorised)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewUnauthorizedError(i18n.KeyAuthUnauthorised)
		}
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}
