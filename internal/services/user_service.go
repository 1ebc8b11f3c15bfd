// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"

	"github.com/shopwave/ecommerce-backend/internal/i18n"
	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

type UserService struct {
	users         repository.UserRepository
	files         FileStore
	uploadOptions UploadOptions
}

type UpdateProfileRequest struct {
	UserName     *string `json:"userName" validate:"omitempty,min=2,max=100"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

func NewUserService(users repository.UserRepository, files FileStore, uploadOptions UploadOptions) *UserService {
	return &UserService{
		users:         users,
		files:         files,
		uploadOptions: uploadOptions,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyUserNotFound)
	}
	summary := user.Summary()
	return &summary, nil
}

// UpdateProfile changes only userName and profileImage.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*models.UserSummary, error) {
	if req.UserName != nil {
		trimmed := strings.TrimSpace(*req.UserName)
		req.UserName = &trimmed
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyUserNotFound)
	}

	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}

func (s *UserService) UploadProfileImage(ctx context.Context, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, i18n.KeyUserNotFound)
	}

	result, err := s.files.UploadFile(ctx, file, header, s.uploadOptions)
	if err != nil {
		return nil, err
	}

	user.ProfileImage = result.URL
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	summary := user.Summary()
	return &summary, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, i18n.KeyUserNotFound)
	}

	if err := user.CheckPassword(req.OldPassword); err != nil {
		return utils.NewValidationError(i18n.KeyAuthOldPasswordWrong)
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Update(ctx, user)
}

// DeleteAccount removes the user record only; carts, orders and reviews are kept.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewNotFoundError(i18n.KeyUserNotFound)
		}
		return err
	}
	return nil
}
