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

type ProductImageHandler struct {
	imageService service.ProductImageService
	validator    *validator.Validate
}

func NewProductImageHandler(imageService service.ProductImageService) *ProductImageHandler {
	return &ProductImageHandler{imageService: imageService, validator: validator.New()}
}

func (h *ProductImageHandler) AddImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		var req models.CreateProductImageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.AltText = utils.Sanitize(req.AltText)
		req.Title = utils.Sanitize(req.Title)

		image, err := h.imageService.AddProductImage(r.Context(), productID, &req)
		if err != nil {
			logger.Error("Failed to add product image",
				slog.String("productId", productID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product image added",
			slog.String("productId", productID.String()),
			slog.String("imageId", image.ID.String()))
		response.Success(w, http.StatusCreated, service.ToImageResponse(image))
	}
}

func (h *ProductImageHandler) ListImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		images, err := h.imageService.ListProductImages(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		responses := make([]*models.ProductImageResponse, len(images))
		for i, image := range images {
			responses[i] = service.ToImageResponse(image)
		}

		response.Success(w, http.StatusOK, map[string]any{
			"images": responses,
			"total":  len(responses),
		})
	}
}

func (h *ProductImageHandler) GetPrimaryImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		image, err := h.imageService.GetPrimaryImage(r.Context(), productID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, service.ToImageResponse(image))
	}
}

func (h *ProductImageHandler) GetImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		imageID, ok := utils.ParseUUIDPath(r, w, "imageId")
		if !ok {
			return
		}

		image, err := h.imageService.GetProductImage(r.Context(), imageID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, service.ToImageResponse(image))
	}
}

func (h *ProductImageHandler) UpdateImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		imageID, ok := utils.ParseUUIDPath(r, w, "imageId")
		if !ok {
			return
		}

		var req models.UpdateProductImageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if req.AltText != nil {
			sanitized := utils.Sanitize(*req.AltText)
			req.AltText = &sanitized
		}

		if req.Title != nil {
			sanitized := utils.Sanitize(*req.Title)
			req.Title = &sanitized
		}

		image, err := h.imageService.UpdateProductImage(r.Context(), imageID, &req)
		if err != nil {
			logger.Error("Failed to update product image",
				slog.String("imageId", imageID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product image updated", slog.String("imageId", imageID.String()))
		response.Success(w, http.StatusOK, service.ToImageResponse(image))
	}
}

func (h *ProductImageHandler) SetPrimaryImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, ok := utils.ParseUUIDPath(r, w, "id")
		if !ok {
			return
		}

		imageID, ok := utils.ParseUUIDPath(r, w, "imageId")
		if !ok {
			return
		}

		if err := h.imageService.SetPrimaryProductImage(r.Context(), productID, imageID); err != nil {
			logger.Error("Failed to set primary image",
				slog.String("productId", productID.String()),
				slog.String("imageId", imageID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Primary image set",
			slog.String("productId", productID.String()),
			slog.String("imageId", imageID.String()))
		response.Success(w, http.StatusOK, map[string]string{
			"productId": productID.String(),
			"imageId":   imageID.String(),
		})
	}
}

func (h *ProductImageHandler) DeleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		imageID, ok := utils.ParseUUIDPath(r, w, "imageId")
		if !ok {
			return
		}

		if err := h.imageService.DeleteProductImage(r.Context(), imageID); err != nil {
			logger.Error("Failed to delete product image",
				slog.String("imageId", imageID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product image deleted", slog.String("imageId", imageID.String()))
		response.Success(w, http.StatusOK, map[string]string{"id": imageID.String()})
	}
}
