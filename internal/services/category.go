package service

import (
	"context"
	"fmt"

	"github.com/example/ecommerce-catalog-api/internal/config"
	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	repository "github.com/example/ecommerce-catalog-api/internal/repositories"
	"github.com/google/uuid"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, page, pageSize int) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	ActivateCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	DeactivateCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GenerateSlugFromName(ctx context.Context, name string) (string, error)
}

type categoryService struct {
	repo            repository.CategoryRepository
	slugMaxAttempts int
}

func NewCategoryService(repo repository.CategoryRepository, cfg *config.Catalog) CategoryService {
	return &categoryService{repo: repo, slugMaxAttempts: cfg.SlugMaxAttempts}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	// Value objects validate before any repository call.
	name, err := models.NewCategoryName(req.Name)
	if err != nil {
		return nil, err
	}

	slug, err := models.NewSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	nameExists, err := s.repo.ExistsByName(ctx, name.Value())
	if err != nil {
		return nil, errors.DatabaseError("Failed to check category name").WithError(err)
	}

	if nameExists {
		return nil, errors.ConflictError("A category with this name already exists")
	}

	slugExists, err := s.repo.ExistsBySlug(ctx, slug.Value())
	if err != nil {
		return nil, errors.DatabaseError("Failed to check category slug").WithError(err)
	}

	if slugExists {
		return nil, errors.ConflictError("A category with this slug already exists")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &models.Category{
		Name:        name.Value(),
		Description: req.Description,
		Slug:        slug.Value(),
		IsActive:    isActive,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get category").WithError(err)
	}

	if category == nil {
		return nil, errors.NotFoundError("Category not found")
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, page, pageSize int) ([]*models.Category, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	categories, err := s.repo.FindAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := models.NewCategoryName(*req.Name)
		if err != nil {
			return nil, err
		}

		// Uniqueness check excludes the record's own id.
		existing, err := s.repo.FindByName(ctx, name.Value())
		if err != nil {
			return nil, errors.DatabaseError("Failed to check category name").WithError(err)
		}

		if existing != nil && existing.ID != id {
			return nil, errors.ConflictError("Another category with this name already exists")
		}

		category.Name = name.Value()
	}

	if req.Slug != nil {
		slug, err := models.NewSlug(*req.Slug)
		if err != nil {
			return nil, err
		}

		existing, err := s.repo.FindBySlug(ctx, slug.Value())
		if err != nil {
			return nil, errors.DatabaseError("Failed to check category slug").WithError(err)
		}

		if existing != nil && existing.ID != id {
			return nil, errors.ConflictError("Another category with this slug already exists")
		}

		category.Slug = slug.Value()
	}

	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) ActivateCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.IsActive {
		return nil, errors.ConflictError("Category is already active")
	}

	if err := s.repo.UpdateStatus(ctx, id, true); err != nil {
		return nil, errors.DatabaseError("Failed to activate category").WithError(err)
	}

	category.IsActive = true

	return category, nil
}

func (s *categoryService) DeactivateCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !category.IsActive {
		return nil, errors.ConflictError("Category is already inactive")
	}

	if err := s.repo.UpdateStatus(ctx, id, false); err != nil {
		return nil, errors.DatabaseError("Failed to deactivate category").WithError(err)
	}

	category.IsActive = false

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {

	if _, err := s.GetCategoryByID(ctx, id); err != nil {
		return err
	}

	productCount, err := s.repo.CountProductsByCategory(ctx, id)
	if err != nil {
		return errors.DatabaseError("Failed to count category products").WithError(err)
	}

	// Deletion is blocked, never cascaded.
	if productCount > 0 {
		return errors.InvariantViolationError("Cannot delete a category that has associated products")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.DatabaseError("Failed to delete category").WithError(err)
	}

	return nil
}

// GenerateSlugFromName derives a base slug from the name and resolves
// collisions by appending the first free integer suffix. The loop is
// bounded; exhausting it is reported as a conflict.
func (s *categoryService) GenerateSlugFromName(ctx context.Context, name string) (string, error) {

	base, err := models.SlugFromName(name)
	if err != nil {
		return "", err
	}

	candidate := base.Value()

	for counter := 1; counter <= s.slugMaxAttempts; counter++ {
		exists, err := s.repo.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", errors.DatabaseError("Failed to check slug availability").WithError(err)
		}

		if !exists {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", base.Value(), counter)
	}

	return "", errors.ConflictError("Could not generate a unique slug").
		WithDetail(fmt.Sprintf("gave up after %d attempts", s.slugMaxAttempts))
}
