package service

import (
	"context"

	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/models"
	repository "github.com/example/ecommerce-catalog-api/internal/repositories"
	"github.com/google/uuid"
)

type ProductCategoryService interface {
	AssignCategoriesToProduct(ctx context.Context, productID uuid.UUID, req *models.AssignCategoriesRequest) ([]*models.ProductCategory, error)
	RemoveCategoriesFromProduct(ctx context.Context, productID uuid.UUID, req *models.RemoveCategoriesRequest) error
	UpdateCategoryOrder(ctx context.Context, productID, categoryID uuid.UUID, req *models.UpdateCategoryOrderRequest) error
	SetPrimaryCategory(ctx context.Context, productID, categoryID uuid.UUID) error
	GetProductCategories(ctx context.Context, productID uuid.UUID) ([]*models.ProductCategory, error)
	GetPrimaryCategory(ctx context.Context, productID uuid.UUID) (*models.ProductCategory, error)
	HasPrimaryCategory(ctx context.Context, productID uuid.UUID) (bool, error)
}

type productCategoryService struct {
	repo        repository.ProductCategoryRepository
	productRepo repository.ProductRepository
}

func NewProductCategoryService(repo repository.ProductCategoryRepository, productRepo repository.ProductRepository) ProductCategoryService {
	return &productCategoryService{repo: repo, productRepo: productRepo}
}

func (s *productCategoryService) AssignCategoriesToProduct(ctx context.Context, productID uuid.UUID, req *models.AssignCategoriesRequest) ([]*models.ProductCategory, error) {

	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	if len(req.CategoryIDs) == 0 {
		return nil, errors.ValidationError("At least one category must be provided")
	}

	if req.PrimaryCategoryID != nil && !containsID(req.CategoryIDs, *req.PrimaryCategoryID) {
		return nil, errors.InvariantViolationError("Primary category must be part of the assigned categories")
	}

	// Unordered assignments slot in after the product's current highest
	// display order; the repository's -1 sentinel makes a first batch start
	// at 0.
	displayOrders := req.DisplayOrders
	if displayOrders == nil {
		maxOrder, err := s.repo.GetMaxDisplayOrder(ctx, productID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to get display order").WithError(err)
		}

		displayOrders = make(map[uuid.UUID]int, len(req.CategoryIDs))
		for i, categoryID := range req.CategoryIDs {
			displayOrders[categoryID] = maxOrder + 1 + i
		}
	}

	if err := s.repo.AssignCategories(ctx, productID, req.CategoryIDs, req.PrimaryCategoryID, displayOrders); err != nil {
		return nil, errors.DatabaseError("Failed to assign categories").WithError(err)
	}

	return s.GetProductCategories(ctx, productID)
}

func (s *productCategoryService) RemoveCategoriesFromProduct(ctx context.Context, productID uuid.UUID, req *models.RemoveCategoriesRequest) error {

	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	if len(req.CategoryIDs) == 0 {
		return errors.ValidationError("At least one category must be provided")
	}

	current, err := s.repo.FindProductCategories(ctx, productID)
	if err != nil {
		return errors.DatabaseError("Failed to fetch product categories").WithError(err)
	}

	assigned := make(map[uuid.UUID]*models.ProductCategory, len(current))
	for _, link := range current {
		assigned[link.CategoryID] = link
	}

	for _, categoryID := range req.CategoryIDs {
		if _, ok := assigned[categoryID]; !ok {
			return errors.InvariantViolationError("Category is not assigned to this product").
				WithDetail(categoryID.String())
		}
	}

	// The primary may only leave when nothing would remain behind; the check
	// runs against the pre-removal snapshot, with the remaining set computed
	// by membership so duplicated request ids cannot widen the removal.
	removing := make(map[uuid.UUID]bool, len(req.CategoryIDs))
	for _, categoryID := range req.CategoryIDs {
		removing[categoryID] = true
	}

	remaining := 0
	for _, link := range current {
		if !removing[link.CategoryID] {
			remaining++
		}
	}

	for _, link := range current {
		if link.IsPrimary && removing[link.CategoryID] && remaining > 0 {
			return errors.InvariantViolationError("Cannot remove the primary category while other categories remain")
		}
	}

	if err := s.repo.RemoveCategories(ctx, productID, req.CategoryIDs); err != nil {
		return errors.DatabaseError("Failed to remove categories").WithError(err)
	}

	return nil
}

func (s *productCategoryService) UpdateCategoryOrder(ctx context.Context, productID, categoryID uuid.UUID, req *models.UpdateCategoryOrderRequest) error {

	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	if req.DisplayOrder < 0 {
		return errors.ValidationError("Display order cannot be negative")
	}

	isAssigned, err := s.repo.IsCategoryAssigned(ctx, productID, categoryID)
	if err != nil {
		return errors.DatabaseError("Failed to check category assignment").WithError(err)
	}

	if !isAssigned {
		return errors.InvariantViolationError("Category is not assigned to this product")
	}

	if err := s.repo.UpdateCategoryOrder(ctx, productID, categoryID, req.DisplayOrder, req.IsPrimary); err != nil {
		return errors.DatabaseError("Failed to update category order").WithError(err)
	}

	return nil
}

func (s *productCategoryService) SetPrimaryCategory(ctx context.Context, productID, categoryID uuid.UUID) error {

	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	isAssigned, err := s.repo.IsCategoryAssigned(ctx, productID, categoryID)
	if err != nil {
		return errors.DatabaseError("Failed to check category assignment").WithError(err)
	}

	if !isAssigned {
		return errors.InvariantViolationError("Category is not assigned to this product")
	}

	currentPrimary, err := s.repo.FindPrimaryCategory(ctx, productID)
	if err != nil {
		return errors.DatabaseError("Failed to fetch primary category").WithError(err)
	}

	if currentPrimary != nil && currentPrimary.CategoryID == categoryID {
		return errors.ConflictError("Category is already the primary category")
	}

	if err := s.repo.SetPrimary(ctx, productID, categoryID); err != nil {
		return errors.DatabaseError("Failed to set primary category").WithError(err)
	}

	return nil
}

func (s *productCategoryService) GetProductCategories(ctx context.Context, productID uuid.UUID) ([]*models.ProductCategory, error) {

	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	links, err := s.repo.FindProductCategories(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch product categories").WithError(err)
	}

	return links, nil
}

func (s *productCategoryService) GetPrimaryCategory(ctx context.Context, productID uuid.UUID) (*models.ProductCategory, error) {

	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	primary, err := s.repo.FindPrimaryCategory(ctx, productID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch primary category").WithError(err)
	}

	if primary == nil {
		return nil, errors.NotFoundError("Product has no primary category")
	}

	return primary, nil
}

func (s *productCategoryService) HasPrimaryCategory(ctx context.Context, productID uuid.UUID) (bool, error) {

	if err := s.requireProduct(ctx, productID); err != nil {
		return false, err
	}

	hasPrimary, err := s.repo.HasPrimaryCategory(ctx, productID)
	if err != nil {
		return false, errors.DatabaseError("Failed to check primary category").WithError(err)
	}

	return hasPrimary, nil
}

func (s *productCategoryService) requireProduct(ctx context.Context, productID uuid.UUID) error {

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil {
		return errors.NotFoundError("Product not found")
	}

	return nil
}

func containsID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}

	return false
}
