package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug" validate:"required,min=3,max=100"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,min=3,max=100"`
}

type GenerateSlugRequest struct {
	Name string `json:"name" validate:"required,min=3,max=100"`
}

type GenerateSlugResponse struct {
	Slug string `json:"slug"`
}
