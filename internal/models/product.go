package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus is derived, never stored: INACTIVE wins over OUT_OF_STOCK,
// which wins over ACTIVE.
type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

type Product struct {
	ID                       uuid.UUID  `json:"id"`
	Name                     string     `json:"name"`
	Description              string     `json:"description"`
	Slug                     string     `json:"slug"`
	SKU                      string     `json:"sku"`
	Price                    float64    `json:"price"`
	CostPrice                *float64   `json:"cost_price,omitempty"`
	ComparePrice             *float64   `json:"compare_price,omitempty"`
	CategoryID               *uuid.UUID `json:"category_id,omitempty"`
	Quantity                 int64      `json:"quantity"`
	TrackQuantity            bool       `json:"track_quantity"`
	AllowOutOfStockPurchases bool       `json:"allow_out_of_stock_purchases"`
	IsActive                 bool       `json:"is_active"`
	IsFeatured               bool       `json:"is_featured"`
	IsDigital                bool       `json:"is_digital"`
	Weight                   *float64   `json:"weight,omitempty"`
	MetaTitle                string     `json:"meta_title,omitempty"`
	MetaDescription          string     `json:"meta_description,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

type CreateProductRequest struct {
	Name                     string     `json:"name" validate:"required,min=3,max=200"`
	Description              string     `json:"description,omitempty"`
	Slug                     string     `json:"slug" validate:"required,min=3,max=100"`
	SKU                      string     `json:"sku,omitempty" validate:"omitempty,min=3,max=50"`
	Price                    float64    `json:"price" validate:"gte=0"`
	CostPrice                *float64   `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	ComparePrice             *float64   `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	CategoryID               *uuid.UUID `json:"category_id,omitempty"`
	Quantity                 *int64     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	TrackQuantity            *bool      `json:"track_quantity,omitempty"`
	AllowOutOfStockPurchases *bool      `json:"allow_out_of_stock_purchases,omitempty"`
	IsDigital                *bool      `json:"is_digital,omitempty"`
	IsFeatured               *bool      `json:"is_featured,omitempty"`
	Weight                   *float64   `json:"weight,omitempty" validate:"omitempty,gte=0"`
	MetaTitle                string     `json:"meta_title,omitempty"`
	MetaDescription          string     `json:"meta_description,omitempty"`
}

type UpdateProductRequest struct {
	Name                     *string    `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description              *string    `json:"description,omitempty"`
	Slug                     *string    `json:"slug,omitempty" validate:"omitempty,min=3,max=100"`
	SKU                      *string    `json:"sku,omitempty" validate:"omitempty,min=3,max=50"`
	Price                    *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	CostPrice                *float64   `json:"cost_price,omitempty" validate:"omitempty,gte=0"`
	ComparePrice             *float64   `json:"compare_price,omitempty" validate:"omitempty,gte=0"`
	CategoryID               *uuid.UUID `json:"category_id,omitempty"`
	Quantity                 *int64     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	TrackQuantity            *bool      `json:"track_quantity,omitempty"`
	AllowOutOfStockPurchases *bool      `json:"allow_out_of_stock_purchases,omitempty"`
	IsDigital                *bool      `json:"is_digital,omitempty"`
	Weight                   *float64   `json:"weight,omitempty" validate:"omitempty,gte=0"`
	MetaTitle                *string    `json:"meta_title,omitempty"`
	MetaDescription          *string    `json:"meta_description,omitempty"`
}

type UpdateProductPriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

type UpdateProductStockRequest struct {
	QuantityChange int64 `json:"quantity_change" validate:"required"`
}

type CheckAvailabilityResponse struct {
	Available bool `json:"available"`
}

type ProductStatusResponse struct {
	Status ProductStatus `json:"status"`
}
