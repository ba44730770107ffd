package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/ecommerce-catalog-api/internal/models"
	"github.com/example/ecommerce-catalog-api/internal/utils"
	"github.com/google/uuid"
)

// ProductImageRepository persists per-product images. SetPrimary runs the
// demote/promote pair in one transaction, preserving both display orders.
type ProductImageRepository interface {
	Create(ctx context.Context, image *models.ProductImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error)
	FindPrimaryImage(ctx context.Context, productID uuid.UUID) (*models.ProductImage, error)
	Update(ctx context.Context, image *models.ProductImage) error
	SetPrimary(ctx context.Context, productID, imageID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetMaxDisplayOrder(ctx context.Context, productID uuid.UUID) (int, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int, error)
}

type productImageRepository struct {
	DB *sql.DB
}

func NewProductImageRepo(db *sql.DB) ProductImageRepository {
	return &productImageRepository{DB: db}
}

const productImageColumns = `id, product_id, url, image_data, alt_text, title, is_primary,
		display_order, file_size, mime_type, width, height, created_at, updated_at`

func scanProductImage(scanner interface{ Scan(...any) error }) (*models.ProductImage, error) {
	image := &models.ProductImage{}

	var url, imageData, altText, title, mimeType sql.NullString

	err := scanner.Scan(&image.ID, &image.ProductID, &url, &imageData, &altText, &title,
		&image.IsPrimary, &image.DisplayOrder, &image.FileSize, &mimeType,
		&image.Width, &image.Height, &image.CreatedAt, &image.UpdatedAt)
	if err != nil {
		return nil, err
	}

	image.URL = url.String
	image.ImageData = imageData.String
	image.AltText = altText.String
	image.Title = title.String
	image.MimeType = mimeType.String

	return image, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func (r *productImageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO product_images (product_id, url, image_data, alt_text, title, is_primary,
				display_order, file_size, mime_type, width, height)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		image.ProductID, nullable(image.URL), nullable(image.ImageData), nullable(image.AltText),
		nullable(image.Title), image.IsPrimary, image.DisplayOrder, image.FileSize,
		nullable(image.MimeType), image.Width, image.Height,
	).Scan(&image.ID, &image.CreatedAt, &image.UpdatedAt)
}

func (r *productImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productImageColumns + ` FROM product_images WHERE id = $1`

	image, err := scanProductImage(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return image, nil
}

func (r *productImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productImageColumns + ` FROM product_images WHERE product_id = $1 ORDER BY display_order ASC`

	rows, err := r.DB.QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var images []*models.ProductImage

	for rows.Next() {
		image, err := scanProductImage(rows)
		if err != nil {
			return nil, err
		}

		images = append(images, image)
	}

	return images, rows.Err()
}

func (r *productImageRepository) FindPrimaryImage(ctx context.Context, productID uuid.UUID) (*models.ProductImage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productImageColumns + ` FROM product_images WHERE product_id = $1 AND is_primary = true`

	image, err := scanProductImage(r.DB.QueryRowContext(dbCtx, query, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return image, nil
}

func (r *productImageRepository) Update(ctx context.Context, image *models.ProductImage) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE product_images SET url = $1, image_data = $2, alt_text = $3, title = $4,
				is_primary = $5, display_order = $6, file_size = $7, mime_type = $8,
				width = $9, height = $10, updated_at = NOW()
			  WHERE id = $11
			  RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		nullable(image.URL), nullable(image.ImageData), nullable(image.AltText), nullable(image.Title),
		image.IsPrimary, image.DisplayOrder, image.FileSize, nullable(image.MimeType),
		image.Width, image.Height, image.ID,
	).Scan(&image.UpdatedAt)
}

func (r *productImageRepository) SetPrimary(ctx context.Context, productID, imageID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	demote := `UPDATE product_images SET is_primary = false, updated_at = NOW()
			   WHERE product_id = $1 AND id <> $2 AND is_primary = true`

	if _, err := tx.ExecContext(dbCtx, demote, productID, imageID); err != nil {
		return err
	}

	promote := `UPDATE product_images SET is_primary = true, updated_at = NOW()
				WHERE product_id = $1 AND id = $2`

	if _, err := tx.ExecContext(dbCtx, promote, productID, imageID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *productImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM product_images WHERE id = $1`

	_, err := r.DB.ExecContext(dbCtx, query, id)

	return err
}

func (r *productImageRepository) GetMaxDisplayOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var maxOrder int

	query := `SELECT COALESCE(MAX(display_order), -1) FROM product_images WHERE product_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, productID).Scan(&maxOrder)

	return maxOrder, err
}

func (r *productImageRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var count int

	query := `SELECT COUNT(*) FROM product_images WHERE product_id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, productID).Scan(&count)

	return count, err
}
