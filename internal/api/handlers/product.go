package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/ecommerce-catalog-api/internal/api/middleware"
	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	service "github.com/example/ecommerce-catalog-api/internal/services"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/example/ecommerce-catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.Description = utils.Sanitize(req.Description)

		product, err := h.productService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created",
			slog.String("productId", product.ID.String()),
			slog.String("sku", product.SKU))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) GetProductBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		slug := r.PathValue("slug")
		if slug == "" {
			response.Error(w, errors.BadRequestError("Product slug is required"))
			return
		}

		product, err := h.productService.GetProductBySlug(r.Context(), slug)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		products, err := h.productService.ListProducts(r.Context(), page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"products": products,
			"total":    len(products),
			"page":     page,
			"pageSize": pageSize,
		})
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if req.Description != nil {
			sanitized := utils.Sanitize(*req.Description)
			req.Description = &sanitized
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product",
				slog.String("productId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product",
				slog.String("productId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, map[string]string{"id": id.String()})
	}
}

func (h *ProductHandler) ActivateProduct() http.HandlerFunc {
	return h.mutate("activate", func(r *http.Request, id uuid.UUID) (*models.Product, error) {
		return h.productService.ActivateProduct(r.Context(), id)
	})
}

func (h *ProductHandler) DeactivateProduct() http.HandlerFunc {
	return h.mutate("deactivate", func(r *http.Request, id uuid.UUID) (*models.Product, error) {
		return h.productService.DeactivateProduct(r.Context(), id)
	})
}

func (h *ProductHandler) SetFeatured() http.HandlerFunc {
	return h.mutate("feature", func(r *http.Request, id uuid.UUID) (*models.Product, error) {
		return h.productService.SetProductAsFeatured(r.Context(), id)
	})
}

func (h *ProductHandler) RemoveFeatured() http.HandlerFunc {
	return h.mutate("unfeature", func(r *http.Request, id uuid.UUID) (*models.Product, error) {
		return h.productService.RemoveProductFromFeatured(r.Context(), id)
	})
}

func (h *ProductHandler) UpdatePrice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.UpdateProductPriceRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProductPrice(r.Context(), id, req.Price)
		if err != nil {
			logger.Error("Failed to update product price",
				slog.String("productId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product price updated",
			slog.String("productId", id.String()),
			slog.Float64("price", product.Price))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) UpdateStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.UpdateProductStockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProductQuantity(r.Context(), id, req.QuantityChange)
		if err != nil {
			logger.Error("Failed to update product stock",
				slog.String("productId", id.String()),
				slog.Int64("change", req.QuantityChange),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product stock updated",
			slog.String("productId", id.String()),
			slog.Int64("quantity", product.Quantity))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) CheckAvailability() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		requested := int64(1)
		if q := r.URL.Query().Get("quantity"); q != "" {
			parsed, err := strconv.ParseInt(q, 10, 64)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid quantity"))
				return
			}

			requested = parsed
		}

		available, err := h.productService.CheckProductAvailability(r.Context(), id, requested)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.CheckAvailabilityResponse{Available: available})
	}
}

func (h *ProductHandler) GetStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		status, err := h.productService.GetProductStatus(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.ProductStatusResponse{Status: status})
	}
}

func (h *ProductHandler) ListByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categoryID, ok := utils.ParseUUIDPath(r, w, "categoryId")
		if !ok {
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}

		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		products, err := h.productService.FindProductsByCategory(r.Context(), categoryID, page, pageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"products": products,
			"total":    len(products),
			"page":     page,
			"pageSize": pageSize,
		})
	}
}

func (h *ProductHandler) ListFeatured() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]*models.Product, error) {
		return h.productService.FindFeaturedProducts(r.Context(), limit)
	})
}

func (h *ProductHandler) ListLowStock() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]*models.Product, error) {
		return h.productService.FindLowStockProducts(r.Context(), limit)
	})
}

func (h *ProductHandler) ListOutOfStock() http.HandlerFunc {
	return h.list(func(r *http.Request, limit int) ([]*models.Product, error) {
		return h.productService.FindOutOfStockProducts(r.Context(), limit)
	})
}

func (h *ProductHandler) mutate(action string, fn func(r *http.Request, id uuid.UUID) (*models.Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		product, err := fn(r, id)
		if err != nil {
			logger.Error("Failed to "+action+" product",
				slog.String("productId", id.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product "+action+"d", slog.String("productId", id.String()))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) list(fn func(r *http.Request, limit int) ([]*models.Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 10
		}

		products, err := fn(r, limit)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"products": products,
			"total":    len(products),
		})
	}
}
