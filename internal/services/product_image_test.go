package service_test

import (
	"context"
	"testing"

	appErrors "github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/repositories/mocks"
	service "github.com/example/ecommerce-catalog-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newImageService(t *testing.T) (service.ProductImageService, *mocks.ProductImageRepository, *mocks.ProductRepository) {
	t.Helper()

	mockRepo := new(mocks.ProductImageRepository)
	mockProductRepo := new(mocks.ProductRepository)

	return service.NewProductImageService(mockRepo, mockProductRepo), mockRepo, mockProductRepo
}

func TestAddProductImage(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()

	expectProduct := func(mockProductRepo *mocks.ProductRepository) {
		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID}, nil)
	}

	t.Run("Success - URL Image With Default Display Order", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, mockProductRepo := newImageService(t)
		expectProduct(mockProductRepo)

		mockRepo.On("GetMaxDisplayOrder", mock.Anything, productID).Return(1, nil).Once()
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(img *models.ProductImage) bool {
			return img.URL != "" && img.ImageData == "" && img.DisplayOrder == 2 && !img.IsPrimary
		})).Return(nil).Once()

		// Act
		image, err := imageService.AddProductImage(ctx, productID, &models.CreateProductImageRequest{
			URL:     "https://example.com/photos/widget.jpg",
			AltText: "A widget",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://example.com/photos/widget.jpg", image.URL)
		assert.Equal(t, 2, image.DisplayOrder)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Base64 Image", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, mockProductRepo := newImageService(t)
		expectProduct(mockProductRepo)

		displayOrder := 0

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(img *models.ProductImage) bool {
			return img.ImageData == "aGVsbG8=" && img.URL == "" && img.MimeType == "image/png"
		})).Return(nil).Once()

		// Act
		image, err := imageService.AddProductImage(ctx, productID, &models.CreateProductImageRequest{
			ImageData:    "aGVsbG8=",
			MimeType:     "image/png",
			DisplayOrder: &displayOrder,
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "image/png", image.MimeType)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Both Sources Provided", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, mockProductRepo := newImageService(t)
		expectProduct(mockProductRepo)

		// Act
		image, err := imageService.AddProductImage(ctx, productID, &models.CreateProductImageRequest{
			URL:       "https://example.com/photos/widget.jpg",
			ImageData: "aGVsbG8=",
		})

		// Assert
		assert.Nil(t, image)
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Neither Source Provided", func(t *testing.T) {
		// Arrange
		imageService, _, mockProductRepo := newImageService(t)
		expectProduct(mockProductRepo)

		// Act
		image, err := imageService.AddProductImage(ctx, productID, &models.CreateProductImageRequest{
			AltText: "no image at all",
		})

		// Assert
		assert.Nil(t, image)
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
	})

	t.Run("Failure - Second Primary Image", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, mockProductRepo := newImageService(t)
		expectProduct(mockProductRepo)

		isPrimary := true
		displayOrder := 5

		mockRepo.On("FindByProduct", mock.Anything, productID).Return([]*models.ProductImage{
			{ID: uuid.New(), ProductID: productID, IsPrimary: true},
		}, nil).Once()

		// Act
		image, err := imageService.AddProductImage(ctx, productID, &models.CreateProductImageRequest{
			URL:          "https://example.com/photos/widget.jpg",
			IsPrimary:    &isPrimary,
			DisplayOrder: &displayOrder,
		})

		// Assert
		assert.Nil(t, image)
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateProductImage(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()
	imageID := uuid.New()

	urlImage := func() *models.ProductImage {
		return &models.ProductImage{
			ID:        imageID,
			ProductID: productID,
			URL:       "https://example.com/photos/old.jpg",
		}
	}

	t.Run("Success - New Image Data Clears URL", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, _ := newImageService(t)

		data := "aGVsbG8="
		mimeType := "image/webp"

		mockRepo.On("FindByID", mock.Anything, imageID).Return(urlImage(), nil).Once()
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(img *models.ProductImage) bool {
			return img.ImageData == data && img.URL == "" && img.MimeType == mimeType
		})).Return(nil).Once()

		// Act
		image, err := imageService.UpdateProductImage(ctx, imageID, &models.UpdateProductImageRequest{
			ImageData: &data,
			MimeType:  &mimeType,
		})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, image.URL)
		assert.Equal(t, data, image.ImageData)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Both Sources In One Update", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, _ := newImageService(t)

		url := "https://example.com/photos/new.jpg"
		data := "aGVsbG8="

		mockRepo.On("FindByID", mock.Anything, imageID).Return(urlImage(), nil).Once()

		// Act
		image, err := imageService.UpdateProductImage(ctx, imageID, &models.UpdateProductImageRequest{
			URL:       &url,
			ImageData: &data,
		})

		// Assert
		assert.Nil(t, image)
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Promote When Another Primary Exists", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, _ := newImageService(t)

		isPrimary := true

		mockRepo.On("FindByID", mock.Anything, imageID).Return(urlImage(), nil).Once()
		mockRepo.On("FindByProduct", mock.Anything, productID).Return([]*models.ProductImage{
			{ID: uuid.New(), ProductID: productID, IsPrimary: true},
			urlImage(),
		}, nil).Once()

		// Act
		image, err := imageService.UpdateProductImage(ctx, imageID, &models.UpdateProductImageRequest{
			IsPrimary: &isPrimary,
		})

		// Assert
		assert.Nil(t, image)
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
	})
}

func TestSetPrimaryProductImage(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()
	imageID := uuid.New()

	t.Run("Success - Promote Non Primary Image", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, _ := newImageService(t)

		mockRepo.On("FindByID", mock.Anything, imageID).
			Return(&models.ProductImage{ID: imageID, ProductID: productID, DisplayOrder: 1}, nil).Once()
		mockRepo.On("SetPrimary", mock.Anything, productID, imageID).Return(nil).Once()

		// Act
		err := imageService.SetPrimaryProductImage(ctx, productID, imageID)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Image Belongs To Another Product", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, _ := newImageService(t)

		mockRepo.On("FindByID", mock.Anything, imageID).
			Return(&models.ProductImage{ID: imageID, ProductID: uuid.New()}, nil).Once()

		// Act
		err := imageService.SetPrimaryProductImage(ctx, productID, imageID)

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "SetPrimary", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Already Primary", func(t *testing.T) {
		// Arrange
		imageService, mockRepo, _ := newImageService(t)

		mockRepo.On("FindByID", mock.Anything, imageID).
			Return(&models.ProductImage{ID: imageID, ProductID: productID, IsPrimary: true}, nil).Once()

		// Act
		err := imageService.SetPrimaryProductImage(ctx, productID, imageID)

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeConflict)
	})
}

func TestOrganizeDisplayOrder(t *testing.T) {
	// Arrange
	images := []*models.ProductImage{
		{ID: uuid.New(), DisplayOrder: 7},
		{ID: uuid.New(), DisplayOrder: 2},
		{ID: uuid.New(), DisplayOrder: 5},
	}

	// Act
	organized := service.OrganizeDisplayOrder(images)

	// Assert
	assert.Len(t, organized, 3)
	assert.Equal(t, 0, organized[0].DisplayOrder)
	assert.Equal(t, 1, organized[1].DisplayOrder)
	assert.Equal(t, 2, organized[2].DisplayOrder)
	// Relative order preserved: 2 < 5 < 7.
	assert.Equal(t, images[1].ID, organized[0].ID)
	assert.Equal(t, images[2].ID, organized[1].ID)
	assert.Equal(t, images[0].ID, organized[2].ID)
	// Input is left untouched.
	assert.Equal(t, 7, images[0].DisplayOrder)
	assert.Equal(t, 2, images[1].DisplayOrder)
	assert.Equal(t, 5, images[2].DisplayOrder)
	assert.NotSame(t, images[1], organized[0])
}

func TestToImageDataURL(t *testing.T) {
	t.Run("Binary Image Becomes Data URI", func(t *testing.T) {
		image := &models.ProductImage{ImageData: "aGVsbG8=", MimeType: "image/png"}

		assert.Equal(t, "data:image/png;base64,aGVsbG8=", service.ToImageDataURL(image))
	})

	t.Run("Existing Data URI Passes Through", func(t *testing.T) {
		image := &models.ProductImage{ImageData: "data:image/png;base64,aGVsbG8="}

		assert.Equal(t, "data:image/png;base64,aGVsbG8=", service.ToImageDataURL(image))
	})

	t.Run("URL Image Returns URL", func(t *testing.T) {
		image := &models.ProductImage{URL: "https://example.com/photos/widget.jpg"}

		assert.Equal(t, "https://example.com/photos/widget.jpg", service.ToImageDataURL(image))
	})
}

func TestFormatDimensions(t *testing.T) {
	width, height := 800, 600

	assert.Equal(t, "800x600", service.FormatDimensions(&width, &height))
	assert.Empty(t, service.FormatDimensions(&width, nil))
	assert.Empty(t, service.FormatDimensions(nil, nil))
}
