package handlers

import (
	"log/slog"
	"net/http"

	"github.com/example/ecommerce-catalog-api/internal/api/middleware"
	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	service "github.com/example/ecommerce-catalog-api/internal/services"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/example/ecommerce-catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.RegisterUser(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)
	}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.userService.LoginUser(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("error", err.Error()))

			// Failed logins still carry the throttling hints.
			if result != nil {
				if appErr, ok := errors.IsAppError(err); ok {
					response.WriteJson(w, appErr.StatusCode, result)
					return
				}
			}

			response.Error(w, err)
			return
		}

		logger.Info("User logged in")
		response.Success(w, http.StatusOK, result)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
