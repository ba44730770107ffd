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

func newAssignmentService(t *testing.T) (service.ProductCategoryService, *mocks.ProductCategoryRepository, *mocks.ProductRepository) {
	t.Helper()

	mockRepo := new(mocks.ProductCategoryRepository)
	mockProductRepo := new(mocks.ProductRepository)

	return service.NewProductCategoryService(mockRepo, mockProductRepo), mockRepo, mockProductRepo
}

func TestAssignCategoriesToProduct(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()

	expectProduct := func(mockProductRepo *mocks.ProductRepository) {
		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID, IsActive: true}, nil)
	}

	t.Run("Success - Display Orders Default After Current Maximum", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		catA, catB := uuid.New(), uuid.New()

		mockRepo.On("GetMaxDisplayOrder", mock.Anything, productID).Return(2, nil).Once()
		mockRepo.On("AssignCategories", mock.Anything, productID, []uuid.UUID{catA, catB}, (*uuid.UUID)(nil),
			map[uuid.UUID]int{catA: 3, catB: 4}).Return(nil).Once()
		mockRepo.On("FindProductCategories", mock.Anything, productID).
			Return([]*models.ProductCategory{}, nil).Once()

		// Act
		_, err := assignmentService.AssignCategoriesToProduct(ctx, productID, &models.AssignCategoriesRequest{
			CategoryIDs: []uuid.UUID{catA, catB},
		})

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - First Assignment Starts At Zero", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		catA := uuid.New()

		mockRepo.On("GetMaxDisplayOrder", mock.Anything, productID).Return(-1, nil).Once()
		mockRepo.On("AssignCategories", mock.Anything, productID, []uuid.UUID{catA}, &catA,
			map[uuid.UUID]int{catA: 0}).Return(nil).Once()
		mockRepo.On("FindProductCategories", mock.Anything, productID).
			Return([]*models.ProductCategory{{ProductID: productID, CategoryID: catA, IsPrimary: true}}, nil).Once()

		// Act
		links, err := assignmentService.AssignCategoriesToProduct(ctx, productID, &models.AssignCategoriesRequest{
			CategoryIDs:       []uuid.UUID{catA},
			PrimaryCategoryID: &catA,
		})

		// Assert
		assert.NoError(t, err)
		assert.Len(t, links, 1)
		assert.True(t, links[0].IsPrimary)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Primary Not In List", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		outsider := uuid.New()

		// Act
		_, err := assignmentService.AssignCategoriesToProduct(ctx, productID, &models.AssignCategoriesRequest{
			CategoryIDs:       []uuid.UUID{uuid.New()},
			PrimaryCategoryID: &outsider,
		})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "AssignCategories", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Category List", func(t *testing.T) {
		// Arrange
		assignmentService, _, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		// Act
		_, err := assignmentService.AssignCategoriesToProduct(ctx, productID, &models.AssignCategoriesRequest{})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		assignmentService, _, mockProductRepo := newAssignmentService(t)

		mockProductRepo.On("FindByID", mock.Anything, productID).Return(nil, nil).Once()

		// Act
		_, err := assignmentService.AssignCategoriesToProduct(ctx, productID, &models.AssignCategoriesRequest{
			CategoryIDs: []uuid.UUID{uuid.New()},
		})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestRemoveCategoriesFromProduct(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()
	primaryID, secondaryID := uuid.New(), uuid.New()

	links := func() []*models.ProductCategory {
		return []*models.ProductCategory{
			{ProductID: productID, CategoryID: primaryID, IsPrimary: true, DisplayOrder: 0},
			{ProductID: productID, CategoryID: secondaryID, DisplayOrder: 1},
		}
	}

	expectProduct := func(mockProductRepo *mocks.ProductRepository) {
		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID}, nil)
	}

	t.Run("Failure - Removing Primary While Others Remain", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		mockRepo.On("FindProductCategories", mock.Anything, productID).Return(links(), nil).Once()

		// Act
		err := assignmentService.RemoveCategoriesFromProduct(ctx, productID, &models.RemoveCategoriesRequest{
			CategoryIDs: []uuid.UUID{primaryID},
		})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "RemoveCategories", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicated Primary ID Does Not Widen The Removal", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		mockRepo.On("FindProductCategories", mock.Anything, productID).Return(links(), nil).Once()

		// Act
		err := assignmentService.RemoveCategoriesFromProduct(ctx, productID, &models.RemoveCategoriesRequest{
			CategoryIDs: []uuid.UUID{primaryID, primaryID},
		})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
		mockRepo.AssertNotCalled(t, "RemoveCategories", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Removing Everything Including Primary", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		all := []uuid.UUID{primaryID, secondaryID}

		mockRepo.On("FindProductCategories", mock.Anything, productID).Return(links(), nil).Once()
		mockRepo.On("RemoveCategories", mock.Anything, productID, all).Return(nil).Once()

		// Act
		err := assignmentService.RemoveCategoriesFromProduct(ctx, productID, &models.RemoveCategoriesRequest{
			CategoryIDs: all,
		})

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Removing A Secondary Category", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		mockRepo.On("FindProductCategories", mock.Anything, productID).Return(links(), nil).Once()
		mockRepo.On("RemoveCategories", mock.Anything, productID, []uuid.UUID{secondaryID}).Return(nil).Once()

		// Act
		err := assignmentService.RemoveCategoriesFromProduct(ctx, productID, &models.RemoveCategoriesRequest{
			CategoryIDs: []uuid.UUID{secondaryID},
		})

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Category Not Assigned", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		mockRepo.On("FindProductCategories", mock.Anything, productID).Return(links(), nil).Once()

		// Act
		err := assignmentService.RemoveCategoriesFromProduct(ctx, productID, &models.RemoveCategoriesRequest{
			CategoryIDs: []uuid.UUID{uuid.New()},
		})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
	})
}

func TestSetPrimaryCategory(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()
	categoryID := uuid.New()

	expectProduct := func(mockProductRepo *mocks.ProductRepository) {
		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID}, nil)
	}

	t.Run("Success - Promote Assigned Category", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		current := &models.ProductCategory{ProductID: productID, CategoryID: uuid.New(), IsPrimary: true}

		mockRepo.On("IsCategoryAssigned", mock.Anything, productID, categoryID).Return(true, nil).Once()
		mockRepo.On("FindPrimaryCategory", mock.Anything, productID).Return(current, nil).Once()
		mockRepo.On("SetPrimary", mock.Anything, productID, categoryID).Return(nil).Once()

		// Act
		err := assignmentService.SetPrimaryCategory(ctx, productID, categoryID)

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Already Primary", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		current := &models.ProductCategory{ProductID: productID, CategoryID: categoryID, IsPrimary: true}

		mockRepo.On("IsCategoryAssigned", mock.Anything, productID, categoryID).Return(true, nil).Once()
		mockRepo.On("FindPrimaryCategory", mock.Anything, productID).Return(current, nil).Once()

		// Act
		err := assignmentService.SetPrimaryCategory(ctx, productID, categoryID)

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeConflict)
		mockRepo.AssertNotCalled(t, "SetPrimary", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Category Not Assigned", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)
		expectProduct(mockProductRepo)

		mockRepo.On("IsCategoryAssigned", mock.Anything, productID, categoryID).Return(false, nil).Once()

		// Act
		err := assignmentService.SetPrimaryCategory(ctx, productID, categoryID)

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeInvariantViolation)
	})
}

func TestUpdateCategoryOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()
	categoryID := uuid.New()

	t.Run("Success - Order And Primary Flag Forwarded", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)

		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID}, nil).Once()

		isPrimary := true

		mockRepo.On("IsCategoryAssigned", mock.Anything, productID, categoryID).Return(true, nil).Once()
		mockRepo.On("UpdateCategoryOrder", mock.Anything, productID, categoryID, 4, &isPrimary).Return(nil).Once()

		// Act
		err := assignmentService.UpdateCategoryOrder(ctx, productID, categoryID, &models.UpdateCategoryOrderRequest{
			DisplayOrder: 4,
			IsPrimary:    &isPrimary,
		})

		// Assert
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Negative Display Order", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)

		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID}, nil).Once()

		// Act
		err := assignmentService.UpdateCategoryOrder(ctx, productID, categoryID, &models.UpdateCategoryOrderRequest{
			DisplayOrder: -1,
		})

		// Assert
		assertAppErrorCode(t, err, appErrors.ErrCodeValidation)
		mockRepo.AssertNotCalled(t, "UpdateCategoryOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetPrimaryCategory(t *testing.T) {
	// Arrange
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Failure - No Primary Category", func(t *testing.T) {
		// Arrange
		assignmentService, mockRepo, mockProductRepo := newAssignmentService(t)

		mockProductRepo.On("FindByID", mock.Anything, productID).
			Return(&models.Product{ID: productID}, nil).Once()
		mockRepo.On("FindPrimaryCategory", mock.Anything, productID).Return(nil, nil).Once()

		// Act
		primary, err := assignmentService.GetPrimaryCategory(ctx, productID)

		// Assert
		assert.Nil(t, primary)
		assertAppErrorCode(t, err, appErrors.ErrCodeNotFound)
	})
}
