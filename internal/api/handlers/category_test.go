package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/ecommerce-catalog-api/internal/api/handlers"
	appErrors "github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/services/mocks"
	"github.com/example/ecommerce-catalog-api/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newJSONRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestCreateCategory(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

	t.Run("Success - Category Created", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateCategoryRequest{
			Name:        "Electronics",
			Description: "Gadgets and more",
			Slug:        "electronics",
		}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := newJSONRequest(http.MethodPost, "/categories", reqBodyBytes)

		expectedCategory := &models.Category{
			ID:       uuid.New(),
			Name:     reqBody.Name,
			Slug:     reqBody.Slug,
			IsActive: true,
		}

		mockCategoryService.On("CreateCategory", mock.Anything, &reqBody).Return(expectedCategory, nil).Once()

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp response.APIResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

		rr := httptest.NewRecorder()
		req := newJSONRequest(http.MethodPost, "/categories", []byte("{invalid json"))

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCategoryService.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Input - Validation Error", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

		reqBody := models.CreateCategoryRequest{Name: "ab", Slug: "electronics"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := newJSONRequest(http.MethodPost, "/categories", reqBodyBytes)

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Validation failed")
		mockCategoryService.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Duplicate Name", func(t *testing.T) {
		// Arrange
		reqBody := models.CreateCategoryRequest{Name: "Electronics", Slug: "electronics"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := newJSONRequest(http.MethodPost, "/categories", reqBodyBytes)

		mockCategoryService.On("CreateCategory", mock.Anything, &reqBody).
			Return(nil, appErrors.ConflictError("Category name already exists")).Once()

		// Act
		categoryHandler.CreateCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeConflict)
	})
}

func TestGetCategory(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		categoryID := uuid.New()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/categories/"+categoryID.String(), nil)
		req.SetPathValue("id", categoryID.String())

		mockCategoryService.On("GetCategoryByID", mock.Anything, categoryID).
			Return(&models.Category{ID: categoryID, Name: "Electronics"}, nil).Once()

		// Act
		categoryHandler.GetCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), categoryID.String())
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed ID", func(t *testing.T) {
		// Arrange
		mockCategoryService := new(mocks.CategoryService)
		categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/categories/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")

		// Act
		categoryHandler.GetCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockCategoryService.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		categoryID := uuid.New()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/categories/"+categoryID.String(), nil)
		req.SetPathValue("id", categoryID.String())

		mockCategoryService.On("GetCategoryByID", mock.Anything, categoryID).
			Return(nil, appErrors.NotFoundError("Category not found")).Once()

		// Act
		categoryHandler.GetCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListCategories(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

	t.Run("Success - Defaults Applied", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)

		mockCategoryService.On("ListCategories", mock.Anything, 1, 10).
			Return([]*models.Category{{ID: uuid.New(), Name: "Electronics"}}, nil).Once()

		// Act
		categoryHandler.ListCategories().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Electronics")
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Success - Oversized Page Size Clamped", func(t *testing.T) {
		// Arrange
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/categories?page=2&pageSize=500", nil)

		mockCategoryService.On("ListCategories", mock.Anything, 2, 10).
			Return([]*models.Category{}, nil).Once()

		// Act
		categoryHandler.ListCategories().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCategoryService.AssertExpectations(t)
	})
}

func TestDeleteCategory(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		categoryID := uuid.New()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/categories/"+categoryID.String(), nil)
		req.SetPathValue("id", categoryID.String())

		mockCategoryService.On("DeleteCategory", mock.Anything, categoryID).Return(nil).Once()

		// Act
		categoryHandler.DeleteCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Failure - Category Has Products", func(t *testing.T) {
		// Arrange
		categoryID := uuid.New()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/categories/"+categoryID.String(), nil)
		req.SetPathValue("id", categoryID.String())

		mockCategoryService.On("DeleteCategory", mock.Anything, categoryID).
			Return(appErrors.InvariantViolationError("Cannot delete a category that has associated products")).Once()

		// Act
		categoryHandler.DeleteCategory().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeInvariantViolation)
	})
}

func TestGenerateSlug(t *testing.T) {
	mockCategoryService := new(mocks.CategoryService)
	categoryHandler := handlers.NewCategoryHandler(mockCategoryService)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		reqBody := models.GenerateSlugRequest{Name: "Gaming Laptops"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := newJSONRequest(http.MethodPost, "/categories/generate-slug", reqBodyBytes)

		mockCategoryService.On("GenerateSlugFromName", mock.Anything, "Gaming Laptops").
			Return("gaming-laptops", nil).Once()

		// Act
		categoryHandler.GenerateSlug().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "gaming-laptops")
		mockCategoryService.AssertExpectations(t)
	})

	t.Run("Failure - Candidates Exhausted", func(t *testing.T) {
		// Arrange
		reqBody := models.GenerateSlugRequest{Name: "Gaming Laptops"}
		reqBodyBytes, _ := json.Marshal(reqBody)

		rr := httptest.NewRecorder()
		req := newJSONRequest(http.MethodPost, "/categories/generate-slug", reqBodyBytes)

		mockCategoryService.On("GenerateSlugFromName", mock.Anything, "Gaming Laptops").
			Return("", appErrors.ConflictError("Could not generate a unique slug")).Once()

		// Act
		categoryHandler.GenerateSlug().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
