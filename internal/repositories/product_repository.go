package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/google/uuid"
)

// ProductRepository is the persistence contract for the product aggregate.
// Find* methods return (nil, nil) when no row matches. Deleting a product
// cascades to its images and category links at the schema level.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	FindAll(ctx context.Context, limit, offset int) ([]*models.Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*models.Product, error)
	FindFeatured(ctx context.Context, limit int) ([]*models.Product, error)
	FindLowStock(ctx context.Context, threshold int64, limit int) ([]*models.Product, error)
	FindOutOfStock(ctx context.Context, limit int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, description, slug, sku, price, cost_price, compare_price,
		category_id, quantity, track_quantity, allow_out_of_stock_purchases,
		is_active, is_featured, is_digital, weight, meta_title, meta_description,
		created_at, updated_at`

func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}

	err := scanner.Scan(&product.ID, &product.Name, &product.Description, &product.Slug, &product.SKU,
		&product.Price, &product.CostPrice, &product.ComparePrice, &product.CategoryID,
		&product.Quantity, &product.TrackQuantity, &product.AllowOutOfStockPurchases,
		&product.IsActive, &product.IsFeatured, &product.IsDigital, &product.Weight,
		&product.MetaTitle, &product.MetaDescription, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (name, description, slug, sku, price, cost_price, compare_price,
				category_id, quantity, track_quantity, allow_out_of_stock_purchases,
				is_active, is_featured, is_digital, weight, meta_title, meta_description)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Description, product.Slug, product.SKU, product.Price,
		product.CostPrice, product.ComparePrice, product.CategoryID, product.Quantity,
		product.TrackQuantity, product.AllowOutOfStockPurchases, product.IsActive,
		product.IsFeatured, product.IsDigital, product.Weight, product.MetaTitle, product.MetaDescription,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) findOne(ctx context.Context, query string, arg any) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return product, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *productRepository) FindAll(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return r.queryProducts(ctx, query, limit, offset)
}

func (r *productRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	return r.queryProducts(ctx, query, categoryID, limit, offset)
}

func (r *productRepository) FindFeatured(ctx context.Context, limit int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_featured = true AND is_active = true ORDER BY created_at DESC LIMIT $1`

	return r.queryProducts(ctx, query, limit)
}

func (r *productRepository) FindLowStock(ctx context.Context, threshold int64, limit int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
			  WHERE track_quantity = true AND quantity > 0 AND quantity <= $1
			  ORDER BY quantity ASC LIMIT $2`

	return r.queryProducts(ctx, query, threshold, limit)
}

func (r *productRepository) FindOutOfStock(ctx context.Context, limit int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
			  WHERE track_quantity = true AND quantity = 0
			  ORDER BY updated_at DESC LIMIT $1`

	return r.queryProducts(ctx, query, limit)
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET name = $1, description = $2, slug = $3, sku = $4, price = $5,
				cost_price = $6, compare_price = $7, category_id = $8, quantity = $9,
				track_quantity = $10, allow_out_of_stock_purchases = $11, is_active = $12,
				is_featured = $13, is_digital = $14, weight = $15, meta_title = $16,
				meta_description = $17, updated_at = NOW()
			  WHERE id = $18
			  RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.Name, product.Description, product.Slug, product.SKU, product.Price,
		product.CostPrice, product.ComparePrice, product.CategoryID, product.Quantity,
		product.TrackQuantity, product.AllowOutOfStockPurchases, product.IsActive,
		product.IsFeatured, product.IsDigital, product.Weight, product.MetaTitle,
		product.MetaDescription, product.ID,
	).Scan(&product.UpdatedAt)
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM products WHERE id = $1`

	_, err := r.DB.ExecContext(dbCtx, query, id)

	return err
}

func (r *productRepository) CategoryExists(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`

	err := r.DB.QueryRowContext(dbCtx, query, categoryID).Scan(&exists)

	return exists, err
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&count)

	return count, err
}

func (r *productRepository) CountActive(ctx context.Context) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products WHERE is_active = true`).Scan(&count)

	return count, err
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)

	return count, err
}
