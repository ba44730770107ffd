package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/google/uuid"
)

// CategoryRepository is the persistence contract consumed by the category
// service. Find* methods return (nil, nil) when no row matches; the schema
// carries UNIQUE constraints on name and slug as the backstop for the
// domain-level uniqueness checks.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindAll(ctx context.Context, limit, offset int) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	CountProductsByCategory(ctx context.Context, id uuid.UUID) (int, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

const categoryColumns = `id, name, description, slug, is_active, created_at, updated_at`

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO categories (name, description, slug, is_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description, category.Slug, category.IsActive).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) scanCategory(row *sql.Row) (*models.Category, error) {
	category := &models.Category{}

	err := row.Scan(&category.ID, &category.Name, &category.Description, &category.Slug,
		&category.IsActive, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	return r.scanCategory(r.DB.QueryRowContext(dbCtx, query, id))
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`

	return r.scanCategory(r.DB.QueryRowContext(dbCtx, query, name))
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`

	return r.scanCategory(r.DB.QueryRowContext(dbCtx, query, slug))
}

func (r *categoryRepository) FindAll(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(dbCtx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var categories []*models.Category

	for rows.Next() {
		category := &models.Category{}

		err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.Slug,
			&category.IsActive, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET name = $1, description = $2, slug = $3, updated_at = NOW()
			  WHERE id = $4
			  RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, category.Name, category.Description, category.Slug, category.ID).
		Scan(&category.UpdatedAt)
}

func (r *categoryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.DB.ExecContext(dbCtx, query, isActive, id)

	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM categories WHERE id = $1`

	_, err := r.DB.ExecContext(dbCtx, query, id)

	return err
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`

	err := r.DB.QueryRowContext(dbCtx, query, name).Scan(&exists)

	return exists, err
}

func (r *categoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`

	err := r.DB.QueryRowContext(dbCtx, query, slug).Scan(&exists)

	return exists, err
}

func (r *categoryRepository) CountProductsByCategory(ctx context.Context, id uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	query := `SELECT COUNT(*) FROM product_categories WHERE category_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&count)

	return count, err
}
