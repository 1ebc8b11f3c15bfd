package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
)

// FeatureService manages storefront banner images.
type FeatureService struct {
	features      repository.FeatureRepository
	files         FileStore
	uploadOptions UploadOptions
}

type AddFeatureImageRequest struct {
	Image string `json:"image" validate:"required,url"`
}

func NewFeatureService(features repository.FeatureRepository, files FileStore, uploadOptions UploadOptions) *FeatureService {
	return &FeatureService{
		features:      features,
		files:         files,
		uploadOptions: uploadOptions,
	}
}

func (s *FeatureService) List(ctx context.Context) ([]models.FeatureImage, error) {
	images, err := s.features.List(ctx)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []models.FeatureImage{}
	}
	return images, nil
}

func (s *FeatureService) AddByURL(ctx context.Context, req *AddFeatureImageRequest) (*models.FeatureImage, error) {
	req.Image = strings.TrimSpace(req.Image)
	if err := validate(req); err != nil {
		return nil, err
	}

	image := &models.FeatureImage{Image: req.Image}
	if err := s.features.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *FeatureService) AddUpload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.FeatureImage, error) {
	result, err := s.files.UploadFile(ctx, file, header, s.uploadOptions)
	if err != nil {
		return nil, err
	}

	image := &models.FeatureImage{Image: result.URL}
	if err := s.features.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}
