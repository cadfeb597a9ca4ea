// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	catalogdom "m3dshop/internal/domain/catalog"
)

type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

// ========================
// catalog.Repository impl
// ========================

func (r *ProductRepositoryPG) List(ctx context.Context, page, pageSize int) ([]catalogdom.Product, error) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = catalogdom.DefaultPageSize
	}

	const q = `
SELECT
  p.id, p.slug, p.name, p.name_en, p.description, p.description_en,
  p.price, p.currency, p.brand_id, p.url, p.created_at, p.updated_at,
  b.id, b.name, b.name_en
FROM products p
LEFT JOIN brands b ON b.id = p.brand_id
ORDER BY p.id
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, q, pageSize, pageSize*page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]catalogdom.Product, 0, pageSize)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *ProductRepositoryPG) GetBySlug(ctx context.Context, slug string) (*catalogdom.Product, error) {
	const q = `
SELECT
  p.id, p.slug, p.name, p.name_en, p.description, p.description_en,
  p.price, p.currency, p.brand_id, p.url, p.created_at, p.updated_at,
  b.id, b.name, b.name_en
FROM products p
LEFT JOIN brands b ON b.id = p.brand_id
WHERE p.slug = $1`

	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(slug))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogdom.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryPG) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (catalogdom.Product, error) {
	var (
		p catalogdom.Product

		nameEN, descr, descrEN, url sql.NullString

		brandID     sql.NullInt64
		brandName   sql.NullString
		brandNameEN sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &nameEN, &descr, &descrEN,
		&p.Price, &p.Currency, &p.BrandID, &url, &p.CreatedAt, &p.UpdatedAt,
		&brandID, &brandName, &brandNameEN,
	)
	if err != nil {
		return catalogdom.Product{}, err
	}

	p.NameEN = nameEN.String
	p.Description = descr.String
	p.DescriptionEN = descrEN.String
	p.URL = url.String

	if brandID.Valid {
		p.Brand = &catalogdom.Brand{
			ID:     brandID.Int64,
			Name:   brandName.String,
			NameEN: brandNameEN.String,
		}
	}
	return p, nil
}
