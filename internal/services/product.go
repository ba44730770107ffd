package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/ecommerce-catalog-api/internal/cache"
	"github.com/example/ecommerce-catalog-api/internal/config"
	"github.com/example/ecommerce-catalog-api/internal/errors"
	"github.com/example/ecommerce-catalog-api/internal/metrics"
	"github.com/example/ecommerce-catalog-api/internal/models"
	repository "github.com/example/ecommerce-catalog-api/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ActivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProductPrice(ctx context.Context, id uuid.UUID, newPrice float64) (*models.Product, error)
	UpdateProductQuantity(ctx context.Context, id uuid.UUID, change int64) (*models.Product, error)
	CheckProductAvailability(ctx context.Context, id uuid.UUID, requested int64) (bool, error)
	GetProductStatus(ctx context.Context, id uuid.UUID) (models.ProductStatus, error)
	SetProductAsFeatured(ctx context.Context, id uuid.UUID) (*models.Product, error)
	RemoveProductFromFeatured(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]*models.Product, error)
	FindFeaturedProducts(ctx context.Context, limit int) ([]*models.Product, error)
	FindLowStockProducts(ctx context.Context, limit int) ([]*models.Product, error)
	FindOutOfStockProducts(ctx context.Context, limit int) ([]*models.Product, error)
}

type productService struct {
	repo              repository.ProductRepository
	linkRepo          repository.ProductCategoryRepository
	cache             cache.Cache
	cacheTTL          time.Duration
	lowStockThreshold int64
}

func NewProductService(repo repository.ProductRepository, linkRepo repository.ProductCategoryRepository, cacheStore cache.Cache, catalogCfg *config.Catalog, cacheCfg *config.CacheConfig) ProductService {
	return &productService{
		repo:              repo,
		linkRepo:          linkRepo,
		cache:             cacheStore,
		cacheTTL:          cacheCfg.DefaultTTL,
		lowStockThreshold: catalogCfg.LowStockThreshold,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	name, err := models.NewProductName(req.Name)
	if err != nil {
		return nil, err
	}

	slug, err := models.NewSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	// SKU is derived from the name when the caller does not supply one.
	var sku models.SKU

	if req.SKU != "" {
		sku, err = models.NewSKU(req.SKU)
	} else {
		sku, err = models.SKUFromName(req.Name)
	}

	if err != nil {
		return nil, err
	}

	price, err := models.NewPrice(req.Price)
	if err != nil {
		return nil, err
	}

	costPrice, err := optionalPrice(req.CostPrice)
	if err != nil {
		return nil, err
	}

	comparePrice, err := optionalPrice(req.ComparePrice)
	if err != nil {
		return nil, err
	}

	trackQuantity := true
	if req.TrackQuantity != nil {
		trackQuantity = *req.TrackQuantity
	}

	var initialQuantity int64
	if req.Quantity != nil {
		initialQuantity = *req.Quantity
	}

	quantity, err := models.NewQuantity(initialQuantity, trackQuantity)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBySlug(ctx, slug.Value())
	if err != nil {
		return nil, errors.DatabaseError("Failed to check product slug").WithError(err)
	}

	if existing != nil {
		return nil, errors.ConflictError("A product with this slug already exists")
	}

	existing, err = s.repo.FindBySKU(ctx, sku.Value())
	if err != nil {
		return nil, errors.DatabaseError("Failed to check product SKU").WithError(err)
	}

	if existing != nil {
		return nil, errors.ConflictError("A product with this SKU already exists")
	}

	if req.CategoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to check category").WithError(err)
		}

		if !exists {
			return nil, errors.InvariantViolationError("Referenced category does not exist")
		}
	}

	allowOutOfStock := false
	if req.AllowOutOfStockPurchases != nil {
		allowOutOfStock = *req.AllowOutOfStockPurchases
	}

	isDigital := false
	if req.IsDigital != nil {
		isDigital = *req.IsDigital
	}

	isFeatured := false
	if req.IsFeatured != nil {
		isFeatured = *req.IsFeatured
	}

	product := &models.Product{
		Name:                     name.Value(),
		Description:              req.Description,
		Slug:                     slug.Value(),
		SKU:                      sku.Value(),
		Price:                    price.Value(),
		CostPrice:                costPrice,
		ComparePrice:             comparePrice,
		CategoryID:               req.CategoryID,
		Quantity:                 quantity.Value(),
		TrackQuantity:            quantity.IsTrackingEnabled(),
		AllowOutOfStockPurchases: allowOutOfStock,
		IsActive:                 true,
		IsFeatured:               isFeatured,
		IsDigital:                isDigital,
		Weight:                   req.Weight,
		MetaTitle:                req.MetaTitle,
		MetaDescription:          req.MetaDescription,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	var cached models.Product

	// Cache failures degrade to a repository read.
	hit, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		slog.Warn("product cache read failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	if hit {
		metrics.RecordCacheLookup("hit")

		return &cached, nil
	}

	metrics.RecordCacheLookup("miss")

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil {
		return nil, errors.NotFoundError("Product not found")
	}

	if err := s.cache.Set(ctx, cacheKey, product, s.cacheTTL); err != nil {
		slog.Warn("product cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {

	normalized, err := models.NewSlug(slug)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindBySlug(ctx, normalized.Value())
	if err != nil {
		return nil, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil {
		return nil, errors.NotFoundError("Product not found")
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, page, pageSize int) ([]*models.Product, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	products, err := s.repo.FindAll(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := models.NewProductName(*req.Name)
		if err != nil {
			return nil, err
		}

		product.Name = name.Value()
	}

	if req.Slug != nil {
		slug, err := models.NewSlug(*req.Slug)
		if err != nil {
			return nil, err
		}

		existing, err := s.repo.FindBySlug(ctx, slug.Value())
		if err != nil {
			return nil, errors.DatabaseError("Failed to check product slug").WithError(err)
		}

		if existing != nil && existing.ID != id {
			return nil, errors.ConflictError("Another product with this slug already exists")
		}

		product.Slug = slug.Value()
	}

	if req.SKU != nil {
		sku, err := models.NewSKU(*req.SKU)
		if err != nil {
			return nil, err
		}

		existing, err := s.repo.FindBySKU(ctx, sku.Value())
		if err != nil {
			return nil, errors.DatabaseError("Failed to check product SKU").WithError(err)
		}

		if existing != nil && existing.ID != id {
			return nil, errors.ConflictError("Another product with this SKU already exists")
		}

		product.SKU = sku.Value()
	}

	if req.Price != nil {
		price, err := models.NewPrice(*req.Price)
		if err != nil {
			return nil, err
		}

		product.Price = price.Value()
	}

	if req.CostPrice != nil {
		costPrice, err := optionalPrice(req.CostPrice)
		if err != nil {
			return nil, err
		}

		product.CostPrice = costPrice
	}

	if req.ComparePrice != nil {
		comparePrice, err := optionalPrice(req.ComparePrice)
		if err != nil {
			return nil, err
		}

		product.ComparePrice = comparePrice
	}

	if req.CategoryID != nil {
		exists, err := s.repo.CategoryExists(ctx, *req.CategoryID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to check category").WithError(err)
		}

		if !exists {
			return nil, errors.InvariantViolationError("Referenced category does not exist")
		}

		product.CategoryID = req.CategoryID
	}

	// Quantity and tracking are re-validated together; an omitted field
	// keeps the stored value.
	if req.Quantity != nil || req.TrackQuantity != nil {
		newQuantity := product.Quantity
		if req.Quantity != nil {
			newQuantity = *req.Quantity
		}

		newTracking := product.TrackQuantity
		if req.TrackQuantity != nil {
			newTracking = *req.TrackQuantity
		}

		quantity, err := models.NewQuantity(newQuantity, newTracking)
		if err != nil {
			return nil, err
		}

		product.Quantity = quantity.Value()
		product.TrackQuantity = quantity.IsTrackingEnabled()
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.AllowOutOfStockPurchases != nil {
		product.AllowOutOfStockPurchases = *req.AllowOutOfStockPurchases
	}

	if req.IsDigital != nil {
		product.IsDigital = *req.IsDigital
	}

	if req.Weight != nil {
		product.Weight = req.Weight
	}

	if req.MetaTitle != nil {
		product.MetaTitle = *req.MetaTitle
	}

	if req.MetaDescription != nil {
		product.MetaDescription = *req.MetaDescription
	}

	return s.persist(ctx, product)
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {

	if _, err := s.findExisting(ctx, id); err != nil {
		return err
	}

	// Category links go first so the product never disappears from underneath
	// its assignments.
	if err := s.linkRepo.RemoveAllCategories(ctx, id); err != nil {
		return errors.DatabaseError("Failed to remove product categories").WithError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ActivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.IsActive {
		return nil, errors.ConflictError("Product is already active")
	}

	product.IsActive = true

	return s.persist(ctx, product)
}

func (s *productService) DeactivateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.IsActive {
		return nil, errors.ConflictError("Product is already inactive")
	}

	product.IsActive = false

	return s.persist(ctx, product)
}

func (s *productService) UpdateProductPrice(ctx context.Context, id uuid.UUID, newPrice float64) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := models.NewPrice(newPrice)
	if err != nil {
		return nil, err
	}

	if product.Price == price.Value() {
		return nil, errors.ConflictError("Product already has this price")
	}

	product.Price = price.Value()

	return s.persist(ctx, product)
}

// UpdateProductQuantity applies a signed stock adjustment. Positive change
// increases stock, negative decreases it; a decrease below zero fails and
// leaves the stored quantity untouched.
func (s *productService) UpdateProductQuantity(ctx context.Context, id uuid.UUID, change int64) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.TrackQuantity {
		return nil, errors.InvariantViolationError("Product does not track quantity")
	}

	if change == 0 {
		return nil, errors.ValidationError("Quantity change must be non-zero")
	}

	current, err := models.NewQuantity(product.Quantity, product.TrackQuantity)
	if err != nil {
		return nil, err
	}

	var updated models.Quantity

	if change > 0 {
		updated, err = current.Increase(change)
	} else {
		updated, err = current.Decrease(-change)
	}

	if err != nil {
		return nil, err
	}

	product.Quantity = updated.Value()

	return s.persist(ctx, product)
}

// CheckProductAvailability never fails on a missing or inactive product; it
// reports false.
func (s *productService) CheckProductAvailability(ctx context.Context, id uuid.UUID, requested int64) (bool, error) {

	if requested <= 0 {
		return false, errors.ValidationError("Requested quantity must be positive")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil || !product.IsActive {
		return false, nil
	}

	if !product.TrackQuantity || product.AllowOutOfStockPurchases {
		return true, nil
	}

	return product.Quantity >= requested, nil
}

func (s *productService) GetProductStatus(ctx context.Context, id uuid.UUID) (models.ProductStatus, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return "", err
	}

	if !product.IsActive {
		return models.ProductStatusInactive, nil
	}

	if product.TrackQuantity && product.Quantity <= 0 {
		return models.ProductStatusOutOfStock, nil
	}

	return models.ProductStatusActive, nil
}

func (s *productService) SetProductAsFeatured(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.IsActive {
		return nil, errors.ConflictError("Cannot feature an inactive product")
	}

	if product.IsFeatured {
		return nil, errors.ConflictError("Product is already featured")
	}

	product.IsFeatured = true

	return s.persist(ctx, product)
}

func (s *productService) RemoveProductFromFeatured(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.IsFeatured {
		return nil, errors.ConflictError("Product is not featured")
	}

	product.IsFeatured = false

	return s.persist(ctx, product)
}

func (s *productService) FindProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, pageSize int) ([]*models.Product, error) {

	if page < 1 {
		page = 1
	}

	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	exists, err := s.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to check category").WithError(err)
	}

	if !exists {
		return nil, errors.NotFoundError("Category not found")
	}

	products, err := s.repo.FindByCategory(ctx, categoryID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) FindFeaturedProducts(ctx context.Context, limit int) ([]*models.Product, error) {

	if limit < 1 || limit > 100 {
		limit = 10
	}

	products, err := s.repo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch featured products").WithError(err)
	}

	return products, nil
}

func (s *productService) FindLowStockProducts(ctx context.Context, limit int) ([]*models.Product, error) {

	if limit < 1 || limit > 100 {
		limit = 10
	}

	products, err := s.repo.FindLowStock(ctx, s.lowStockThreshold, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch low stock products").WithError(err)
	}

	return products, nil
}

func (s *productService) FindOutOfStockProducts(ctx context.Context, limit int) ([]*models.Product, error) {

	if limit < 1 || limit > 100 {
		limit = 10
	}

	products, err := s.repo.FindOutOfStock(ctx, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch out of stock products").WithError(err)
	}

	return products, nil
}

// findExisting loads directly from the repository, bypassing the cache, so
// mutations always start from the stored row.
func (s *productService) findExisting(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get product").WithError(err)
	}

	if product == nil {
		return nil, errors.NotFoundError("Product not found")
	}

	return product, nil
}

func (s *productService) persist(ctx context.Context, product *models.Product) (*models.Product, error) {

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, product.ID)

	return product, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	cacheKey := cache.Key(cache.ProductKeyPrefix, id.String())

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		slog.Warn("product cache invalidation failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
	}
}

func optionalPrice(value *float64) (*float64, error) {
	if value == nil {
		return nil, nil
	}

	price, err := models.NewPrice(*value)
	if err != nil {
		return nil, err
	}

	rounded := price.Value()

	return &rounded, nil
}
