package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/ecommerce-catalog-api/internal/api/middleware"
	"github.com/example/ecommerce-catalog-api/internal/models"
	service "github.com/example/ecommerce-catalog-api/internal/services"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/example/ecommerce-catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.Description = utils.Sanitize(req.Description)

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category created", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusCreated, category)
	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		categories, err := h.categoryService.ListCategories(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"categories": categories,
			"total":      len(categories),
			"page":       page,
			"pageSize":   pageSize,
		})
	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if req.Description != nil {
			sanitized := utils.Sanitize(*req.Description)
			req.Description = &sanitized
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category",
				slog.String("categoryId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category updated", slog.String("categoryId", id.String()))
		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) ActivateCategory() http.HandlerFunc {
	return h.setStatus(true)
}

func (h *CategoryHandler) DeactivateCategory() http.HandlerFunc {
	return h.setStatus(false)
}

func (h *CategoryHandler) setStatus(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var category *models.Category
		var err error

		if active {
			category, err = h.categoryService.ActivateCategory(r.Context(), id)
		} else {
			category, err = h.categoryService.DeactivateCategory(r.Context(), id)
		}

		if err != nil {
			logger.Error("Failed to change category status",
				slog.String("categoryId", id.String()),
				slog.Bool("active", active),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category status changed",
			slog.String("categoryId", id.String()),
			slog.Bool("active", active))
		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			logger.Error("Failed to delete category",
				slog.String("categoryId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted", slog.String("categoryId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}

func (h *CategoryHandler) GenerateSlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.GenerateSlugRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		slug, err := h.categoryService.GenerateSlugFromName(r.Context(), req.Name)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"slug": slug})
	}
}
