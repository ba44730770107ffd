package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	repository "github.com/example/ecommerce-catalog-api/internal/repositories"
	"github.com/google/uuid"
)

type ProductImageService interface {
	AddProductImage(ctx context.Context, productID uuid.UUID, req *models.CreateProductImageRequest) (*models.ProductImage, error)
	GetProductImage(ctx context.Context, imageID uuid.UUID) (*models.ProductImage, error)
	ListProductImages(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error)
	GetPrimaryImage(ctx context.Context, productID uuid.UUID) (*models.ProductImage, error)
	UpdateProductImage(ctx context.Context, imageID uuid.UUID, req *models.UpdateProductImageRequest) (*models.ProductImage, error)
	SetPrimaryProductImage(ctx context.Context, productID, imageID uuid.UUID) error
	DeleteProductImage(ctx context.Context, imageID uuid.UUID) error
}

type productImageService struct {
	repo        repository.ProductImageRepository
	productRepo repository.ProductRepository
}

func NewProductImageService(repo repository.ProductImageRepository, productRepo repository.ProductRepository) ProductImageService {
	return &productImageService{repo: repo, productRepo: productRepo}
}

const defaultImageMimeType = "image/jpeg"

func (s *productImageService) AddProductImage(ctx context.Context, productID uuid.UUID, req *models.CreateProductImageRequest) (*models.ProductImage, error) {

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil {
		return nil, errors.NotFoundError("Product not found")
	}

	if err := validateImageSource(req.URL, req.ImageData); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: productID,
		AltText:   req.AltText,
		Title:     req.Title,
	}

	if req.URL != "" {
		imageURL, err := models.NewImageURL(req.URL)
		if err != nil {
			return nil, err
		}

		image.URL = imageURL.Value()
	} else {
		mimeType := req.MimeType
		if mimeType == "" {
			mimeType = defaultImageMimeType
		}

		imageData, err := models.NewImageData(req.ImageData, mimeType)
		if err != nil {
			return nil, err
		}

		image.ImageData = imageData.Value()
		image.MimeType = imageData.MimeType()
	}

	if req.FileSize != nil {
		fileSize, err := models.NewImageFileSize(*req.FileSize)
		if err != nil {
			return nil, err
		}

		size := fileSize.Value()
		image.FileSize = &size
	}

	if req.Width != nil && req.Height != nil {
		dimensions, err := models.NewImageDimensions(*req.Width, *req.Height)
		if err != nil {
			return nil, err
		}

		width, height := dimensions.Width(), dimensions.Height()
		image.Width = &width
		image.Height = &height
	}

	if req.DisplayOrder != nil {
		image.DisplayOrder = *req.DisplayOrder
	} else {
		maxOrder, err := s.repo.GetMaxDisplayOrder(ctx, productID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to get display order").WithError(err)
		}

		image.DisplayOrder = maxOrder + 1
	}

	if req.IsPrimary != nil && *req.IsPrimary {
		existing, err := s.repo.FindByProduct(ctx, productID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch product images").WithError(err)
		}

		if err := ValidatePrimaryImageConstraint(existing, image, false); err != nil {
			return nil, err
		}

		image.IsPrimary = true
	}

	if err := s.repo.Create(ctx, image); err != nil {
		return nil, errors.DatabaseError("Failed to create product image").WithError(err)
	}

	return image, nil
}

func (s *productImageService) GetProductImage(ctx context.Context, imageID uuid.UUID) (*models.ProductImage, error) {

	image, err := s.repo.FindByID(ctx, imageID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get product image").WithError(err)
	}

	if image == nil {
		return nil, errors.NotFoundError("Product image not found")
	}

	return image, nil
}

func (s *productImageService) ListProductImages(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil {
		return nil, errors.NotFoundError("Product not found")
	}

	images, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch product images").WithError(err)
	}

	return images, nil
}

func (s *productImageService) GetPrimaryImage(ctx context.Context, productID uuid.UUID) (*models.ProductImage, error) {

	image, err := s.repo.FindPrimaryImage(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch primary image").WithError(err)
	}

	if image == nil {
		return nil, errors.NotFoundError("Product has no primary image")
	}

	return image, nil
}

func (s *productImageService) UpdateProductImage(ctx context.Context, imageID uuid.UUID, req *models.UpdateProductImageRequest) (*models.ProductImage, error) {

	image, err := s.GetProductImage(ctx, imageID)
	if err != nil {
		return nil, err
	}

	newURL := req.URL != nil && strings.TrimSpace(*req.URL) != ""
	newData := req.ImageData != nil && strings.TrimSpace(*req.ImageData) != ""

	if newURL && newData {
		return nil, errors.InvariantViolationError("Cannot provide both an image URL and binary image data")
	}

	// Switching source clears the other side so exactly one survives.
	if newURL {
		imageURL, err := models.NewImageURL(*req.URL)
		if err != nil {
			return nil, err
		}

		image.URL = imageURL.Value()
		image.ImageData = ""
		image.MimeType = ""
	}

	if newData {
		mimeType := image.MimeType
		if req.MimeType != nil && *req.MimeType != "" {
			mimeType = *req.MimeType
		}

		if mimeType == "" {
			mimeType = defaultImageMimeType
		}

		imageData, err := models.NewImageData(*req.ImageData, mimeType)
		if err != nil {
			return nil, err
		}

		image.ImageData = imageData.Value()
		image.MimeType = imageData.MimeType()
		image.URL = ""
	}

	if image.URL == "" && image.ImageData == "" {
		return nil, errors.InvariantViolationError("Image must have either a URL or binary image data")
	}

	if req.AltText != nil {
		image.AltText = *req.AltText
	}

	if req.Title != nil {
		image.Title = *req.Title
	}

	if req.DisplayOrder != nil {
		image.DisplayOrder = *req.DisplayOrder
	}

	if req.FileSize != nil {
		fileSize, err := models.NewImageFileSize(*req.FileSize)
		if err != nil {
			return nil, err
		}

		size := fileSize.Value()
		image.FileSize = &size
	}

	if req.Width != nil && req.Height != nil {
		dimensions, err := models.NewImageDimensions(*req.Width, *req.Height)
		if err != nil {
			return nil, err
		}

		width, height := dimensions.Width(), dimensions.Height()
		image.Width = &width
		image.Height = &height
	}

	if req.IsPrimary != nil {
		if *req.IsPrimary && !image.IsPrimary {
			siblings, err := s.repo.FindByProduct(ctx, image.ProductID)
			if err != nil {
				return nil, errors.DatabaseError("Failed to fetch product images").WithError(err)
			}

			if err := ValidatePrimaryImageConstraint(siblings, image, true); err != nil {
				return nil, err
			}
		}

		image.IsPrimary = *req.IsPrimary
	}

	if err := s.repo.Update(ctx, image); err != nil {
		return nil, errors.DatabaseError("Failed to update product image").WithError(err)
	}

	return image, nil
}

func (s *productImageService) SetPrimaryProductImage(ctx context.Context, productID, imageID uuid.UUID) error {

	image, err := s.GetProductImage(ctx, imageID)
	if err != nil {
		return err
	}

	if image.ProductID != productID {
		return errors.InvariantViolationError("Image does not belong to this product")
	}

	if image.IsPrimary {
		return errors.ConflictError("Image is already the primary image")
	}

	if err := s.repo.SetPrimary(ctx, productID, imageID); err != nil {
		return errors.DatabaseError("Failed to set primary image").WithError(err)
	}

	return nil
}

func (s *productImageService) DeleteProductImage(ctx context.Context, imageID uuid.UUID) error {

	if _, err := s.GetProductImage(ctx, imageID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, imageID); err != nil {
		return errors.DatabaseError("Failed to delete product image").WithError(err)
	}

	return nil
}

// validateImageSource enforces the exactly-one-of rule for new images.
func validateImageSource(url, imageData string) error {
	hasURL := strings.TrimSpace(url) != ""
	hasData := strings.TrimSpace(imageData) != ""

	if hasURL && hasData {
		return errors.InvariantViolationError("Cannot provide both an image URL and binary image data")
	}

	if !hasURL && !hasData {
		return errors.InvariantViolationError("Image must have either a URL or binary image data")
	}

	return nil
}

// ValidatePrimaryImageConstraint rejects a primary flag when another image
// already holds it. On updates the candidate itself is skipped while
// scanning.
func ValidatePrimaryImageConstraint(images []*models.ProductImage, candidate *models.ProductImage, isUpdate bool) error {
	for _, img := range images {
		if isUpdate && img.ID == candidate.ID {
			continue
		}

		if img.IsPrimary {
			return errors.InvariantViolationError("Product already has a primary image")
		}
	}

	return nil
}

// OrganizeDisplayOrder reindexes images to consecutive orders starting at
// zero, preserving their relative order. Pure; callers persist the result.
func OrganizeDisplayOrder(images []*models.ProductImage) []*models.ProductImage {
	sorted := make([]*models.ProductImage, len(images))
	for i, img := range images {
		clone := *img
		sorted[i] = &clone
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})

	for i, img := range sorted {
		img.DisplayOrder = i
	}

	return sorted
}

// ToImageDataURL renders the stored source for direct embedding: binary
// images as a data URI, external images as their URL.
func ToImageDataURL(image *models.ProductImage) string {
	if image.ImageData != "" {
		mimeType := image.MimeType
		if mimeType == "" {
			mimeType = defaultImageMimeType
		}

		if strings.HasPrefix(image.ImageData, "data:") {
			return image.ImageData
		}

		return fmt.Sprintf("data:%s;base64,%s", mimeType, image.ImageData)
	}

	return image.URL
}

// FormatDimensions renders "WxH" or an empty string when either side is
// unknown.
func FormatDimensions(width, height *int) string {
	if width == nil || height == nil {
		return ""
	}

	return fmt.Sprintf("%dx%d", *width, *height)
}

// ToImageResponse decorates an image with its presentation fields.
func ToImageResponse(image *models.ProductImage) *models.ProductImageResponse {
	resp := &models.ProductImageResponse{
		ProductImage:       *image,
		DataURL:            ToImageDataURL(image),
		FormattedDimension: FormatDimensions(image.Width, image.Height),
	}

	if image.FileSize != nil {
		resp.FormattedFileSize = models.FormatFileSize(*image.FileSize)
	}

	return resp
}
