package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory is the product/category join row. For a given product at
// most one row may have IsPrimary set, and if any rows exist exactly one
// must be primary.
type ProductCategory struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	CategoryID   uuid.UUID `json:"category_id"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined category columns, populated on reads only.
	CategoryName     string `json:"category_name,omitempty"`
	CategorySlug     string `json:"category_slug,omitempty"`
	CategoryIsActive bool   `json:"category_is_active,omitempty"`
}

type AssignCategoriesRequest struct {
	CategoryIDs       []uuid.UUID       `json:"category_ids" validate:"required,min=1"`
	PrimaryCategoryID *uuid.UUID        `json:"primary_category_id,omitempty"`
	DisplayOrders     map[uuid.UUID]int `json:"display_orders,omitempty"`
}

type RemoveCategoriesRequest struct {
	CategoryIDs []uuid.UUID `json:"category_ids" validate:"required,min=1"`
}

type UpdateCategoryOrderRequest struct {
	DisplayOrder int   `json:"display_order" validate:"gte=0"`
	IsPrimary    *bool `json:"is_primary,omitempty"`
}
