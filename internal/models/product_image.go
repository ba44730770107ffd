package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage stores exactly one of URL (external image) or ImageData
// (base64-encoded binary), never both and never neither.
type ProductImage struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	URL          string    `json:"url,omitempty"`
	ImageData    string    `json:"image_data,omitempty"`
	AltText      string    `json:"alt_text,omitempty"`
	Title        string    `json:"title,omitempty"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
	FileSize     *int64    `json:"file_size,omitempty"`
	MimeType     string    `json:"mime_type,omitempty"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateProductImageRequest struct {
	URL          string `json:"url,omitempty"`
	ImageData    string `json:"image_data,omitempty"`
	AltText      string `json:"alt_text,omitempty"`
	Title        string `json:"title,omitempty"`
	IsPrimary    *bool  `json:"is_primary,omitempty"`
	DisplayOrder *int   `json:"display_order,omitempty" validate:"omitempty,gte=0"`
	FileSize     *int64 `json:"file_size,omitempty" validate:"omitempty,gte=0"`
	MimeType     string `json:"mime_type,omitempty"`
	Width        *int   `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height       *int   `json:"height,omitempty" validate:"omitempty,gt=0"`
}

type UpdateProductImageRequest struct {
	URL          *string `json:"url,omitempty"`
	ImageData    *string `json:"image_data,omitempty"`
	AltText      *string `json:"alt_text,omitempty"`
	Title        *string `json:"title,omitempty"`
	IsPrimary    *bool   `json:"is_primary,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
	FileSize     *int64  `json:"file_size,omitempty" validate:"omitempty,gte=0"`
	MimeType     *string `json:"mime_type,omitempty"`
	Width        *int    `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height       *int    `json:"height,omitempty" validate:"omitempty,gt=0"`
}

type ProductImageResponse struct {
	ProductImage

	DataURL            string `json:"data_url,omitempty"`
	FormattedFileSize  string `json:"formatted_file_size,omitempty"`
	FormattedDimension string `json:"formatted_dimensions,omitempty"`
}
