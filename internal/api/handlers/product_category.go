package handlers

import (
	"log/slog"
	"net/http"

	"github.com/example/ecommerce-catalog-api/internal/api/middleware"
	"github.com/example/ecommerce-catalog-api/internal/models"
	service "github.com/example/ecommerce-catalog-api/internal/services"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/example/ecommerce-catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductCategoryHandler struct {
	assignmentService service.ProductCategoryService
	validator         *validator.Validate
}

func NewProductCategoryHandler(assignmentService service.ProductCategoryService) *ProductCategoryHandler {
	return &ProductCategoryHandler{assignmentService: assignmentService, validator: validator.New()}
}

func (h *ProductCategoryHandler) AssignCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.AssignCategoriesRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		links, err := h.assignmentService.AssignCategoriesToProduct(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Failed to assign categories",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Categories assigned",
			slog.String("productId", productID.String()),
			slog.Int("count", len(req.CategoryIDs)))
		response.Success(w, http.StatusOK, links)
	}
}

func (h *ProductCategoryHandler) RemoveCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.RemoveCategoriesRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.assignmentService.RemoveCategoriesFromProduct(r.Context(), productID, &req); err != nil {
			logger.Error("Failed to remove categories",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Categories removed",
			slog.String("productId", productID.String()),
			slog.Int("count", len(req.CategoryIDs)))
		response.Success(w, http.StatusOK, map[string]string{"productId": productID.String()})
	}
}

func (h *ProductCategoryHandler) UpdateCategoryOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		categoryID, ok := utils.ParseUUIDPath(r, w, "categoryId")
		if !ok {
			return
		}

		var req models.UpdateCategoryOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.assignmentService.UpdateCategoryOrder(r.Context(), productID, categoryID, &req); err != nil {
			logger.Error("Failed to update category order",
				slog.String("productId", productID.String()),
				slog.String("categoryId", categoryID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{
			"productId":  productID.String(),
			"categoryId": categoryID.String(),
		})
	}
}

func (h *ProductCategoryHandler) SetPrimaryCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		categoryID, ok := utils.ParseUUIDPath(r, w, "categoryId")
		if !ok {
			return
		}

		if err := h.assignmentService.SetPrimaryCategory(r.Context(), productID, categoryID); err != nil {
			logger.Error("Failed to set primary category",
				slog.String("productId", productID.String()),
				slog.String("categoryId", categoryID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Primary category set",
			slog.String("productId", productID.String()),
			slog.String("categoryId", categoryID.String()))
		response.Success(w, http.StatusOK, map[string]string{
			"productId":  productID.String(),
			"categoryId": categoryID.String(),
		})
	}
}

func (h *ProductCategoryHandler) ListProductCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		links, err := h.assignmentService.GetProductCategories(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"categories": links,
			"total":      len(links),
		})
	}
}

func (h *ProductCategoryHandler) GetPrimaryCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		primary, err := h.assignmentService.GetPrimaryCategory(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, primary)
	}
}
