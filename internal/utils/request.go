package utils

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, apperrors.BadRequestError(err.Error()))

		return false
	}

	if err := validate.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.Error(w, apperrors.ValidationError("Invalid input data"))

		return false
	}

	return true

}

// ParseUUIDPath reads a path parameter and rejects anything that is not a
// UUID.
func ParseUUIDPath(r *http.Request, w http.ResponseWriter, name string) (uuid.UUID, bool) {

	value := r.PathValue(name)
	if value == "" {
		response.Error(w, apperrors.BadRequestError("Missing path parameter: "+name))

		return uuid.Nil, false
	}

	id, err := uuid.Parse(value)
	if err != nil {
		response.Error(w, apperrors.BadRequestError("Invalid "+name+": must be a UUID"))

		return uuid.Nil, false
	}

	return id, true
}
