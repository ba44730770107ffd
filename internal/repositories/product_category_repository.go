package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProductCategoryRepository manages the product/category join rows.
// AssignCategories and SetPrimary run both sides of any promote/demote pair
// inside a single transaction so "at most one primary" cannot be broken by
// a partially applied write.
type ProductCategoryRepository interface {
	AssignCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID, primaryCategoryID *uuid.UUID, displayOrders map[uuid.UUID]int) error
	RemoveCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error
	RemoveAllCategories(ctx context.Context, productID uuid.UUID) error
	UpdateCategoryOrder(ctx context.Context, productID, categoryID uuid.UUID, displayOrder int, isPrimary *bool) error
	SetPrimary(ctx context.Context, productID, categoryID uuid.UUID) error
	FindProductCategories(ctx context.Context, productID uuid.UUID) ([]*models.ProductCategory, error)
	FindPrimaryCategory(ctx context.Context, productID uuid.UUID) (*models.ProductCategory, error)
	IsCategoryAssigned(ctx context.Context, productID, categoryID uuid.UUID) (bool, error)
	HasPrimaryCategory(ctx context.Context, productID uuid.UUID) (bool, error)
	GetMaxDisplayOrder(ctx context.Context, productID uuid.UUID) (int, error)
}

type productCategoryRepository struct {
	DB *sql.DB
}

func NewProductCategoryRepo(db *sql.DB) ProductCategoryRepository {
	return &productCategoryRepository{DB: db}
}

func (r *productCategoryRepository) AssignCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID, primaryCategoryID *uuid.UUID, displayOrders map[uuid.UUID]int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if primaryCategoryID != nil {
		// Demote any existing primary before the new one lands.
		demote := `UPDATE product_categories SET is_primary = false, updated_at = NOW()
				   WHERE product_id = $1 AND is_primary = true`

		if _, err := tx.ExecContext(dbCtx, demote, productID); err != nil {
			return err
		}
	}

	insert := `INSERT INTO product_categories (product_id, category_id, is_primary, display_order)
			   VALUES ($1, $2, $3, $4)
			   ON CONFLICT (product_id, category_id)
			   DO UPDATE SET is_primary = EXCLUDED.is_primary, display_order = EXCLUDED.display_order, updated_at = NOW()`

	for _, categoryID := range categoryIDs {
		isPrimary := primaryCategoryID != nil && *primaryCategoryID == categoryID

		if _, err := tx.ExecContext(dbCtx, insert, productID, categoryID, isPrimary, displayOrders[categoryID]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *productCategoryRepository) RemoveCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ids := make([]string, len(categoryIDs))
	for i, id := range categoryIDs {
		ids[i] = id.String()
	}

	query := `DELETE FROM product_categories WHERE product_id = $1 AND category_id = ANY($2::uuid[])`

	_, err := r.DB.ExecContext(dbCtx, query, productID, pq.Array(ids))

	return err
}

func (r *productCategoryRepository) RemoveAllCategories(ctx context.Context, productID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM product_categories WHERE product_id = $1`

	_, err := r.DB.ExecContext(dbCtx, query, productID)

	return err
}

func (r *productCategoryRepository) UpdateCategoryOrder(ctx context.Context, productID, categoryID uuid.UUID, displayOrder int, isPrimary *bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if isPrimary == nil {
		query := `UPDATE product_categories SET display_order = $1, updated_at = NOW()
				  WHERE product_id = $2 AND category_id = $3`

		_, err := r.DB.ExecContext(dbCtx, query, displayOrder, productID, categoryID)

		return err
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if *isPrimary {
		// Clear any other primary in the same transaction; its own display
		// order is left untouched.
		demote := `UPDATE product_categories SET is_primary = false, updated_at = NOW()
				   WHERE product_id = $1 AND category_id <> $2 AND is_primary = true`

		if _, err := tx.ExecContext(dbCtx, demote, productID, categoryID); err != nil {
			return err
		}
	}

	update := `UPDATE product_categories SET display_order = $1, is_primary = $2, updated_at = NOW()
			   WHERE product_id = $3 AND category_id = $4`

	if _, err := tx.ExecContext(dbCtx, update, displayOrder, *isPrimary, productID, categoryID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *productCategoryRepository) SetPrimary(ctx context.Context, productID, categoryID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	demote := `UPDATE product_categories SET is_primary = false, updated_at = NOW()
			   WHERE product_id = $1 AND category_id <> $2 AND is_primary = true`

	if _, err := tx.ExecContext(dbCtx, demote, productID, categoryID); err != nil {
		return err
	}

	promote := `UPDATE product_categories SET is_primary = true, updated_at = NOW()
				WHERE product_id = $1 AND category_id = $2`

	if _, err := tx.ExecContext(dbCtx, promote, productID, categoryID); err != nil {
		return err
	}

	return tx.Commit()
}

const productCategoryColumns = `pc.id, pc.product_id, pc.category_id, pc.is_primary, pc.display_order,
		pc.created_at, pc.updated_at, c.name, c.slug, c.is_active`

func scanProductCategory(scanner interface{ Scan(...any) error }) (*models.ProductCategory, error) {
	link := &models.ProductCategory{}

	err := scanner.Scan(&link.ID, &link.ProductID, &link.CategoryID, &link.IsPrimary, &link.DisplayOrder,
		&link.CreatedAt, &link.UpdatedAt, &link.CategoryName, &link.CategorySlug, &link.CategoryIsActive)
	if err != nil {
		return nil, err
	}

	return link, nil
}

func (r *productCategoryRepository) FindProductCategories(ctx context.Context, productID uuid.UUID) ([]*models.ProductCategory, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productCategoryColumns + `
			  FROM product_categories pc
			  JOIN categories c ON pc.category_id = c.id
			  WHERE pc.product_id = $1
			  ORDER BY pc.display_order ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var links []*models.ProductCategory

	for rows.Next() {
		link, err := scanProductCategory(rows)
		if err != nil {
			return nil, err
		}

		links = append(links, link)
	}

	return links, rows.Err()
}

func (r *productCategoryRepository) FindPrimaryCategory(ctx context.Context, productID uuid.UUID) (*models.ProductCategory, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productCategoryColumns + `
			  FROM product_categories pc
			  JOIN categories c ON pc.category_id = c.id
			  WHERE pc.product_id = $1 AND pc.is_primary = true`

	link, err := scanProductCategory(r.DB.QueryRowContext(dbCtx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return link, nil
}

func (r *productCategoryRepository) IsCategoryAssigned(ctx context.Context, productID, categoryID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var assigned bool

	query := `SELECT EXISTS(SELECT 1 FROM product_categories WHERE product_id = $1 AND category_id = $2)`

	err := r.DB.QueryRowContext(dbCtx, query, productID, categoryID).Scan(&assigned)

	return assigned, err
}

func (r *productCategoryRepository) HasPrimaryCategory(ctx context.Context, productID uuid.UUID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var hasPrimary bool

	query := `SELECT EXISTS(SELECT 1 FROM product_categories WHERE product_id = $1 AND is_primary = true)`

	err := r.DB.QueryRowContext(dbCtx, query, productID).Scan(&hasPrimary)

	return hasPrimary, err
}

// GetMaxDisplayOrder returns -1 when the product has no category links, so
// a first unordered assignment starts at 0.
func (r *productCategoryRepository) GetMaxDisplayOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var maxOrder int

	query := `SELECT COALESCE(MAX(display_order), -1) FROM product_categories WHERE product_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, productID).Scan(&maxOrder)

	return maxOrder, err
}
