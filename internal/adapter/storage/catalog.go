package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CatalogStorage = CatalogRepository{}

// CatalogRepository reads the product catalog: products with their
// ordered images and options (JSON columns) and their variants.
type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

func (r CatalogRepository) ReadProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "CatalogRepository.ReadProductBySlug"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			product_id, title, slug, description,
			price, compare_at_price, images, featured, options
		FROM products
		WHERE slug = $1;`

	p, err := r.scanProduct(r.sqldb.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Variants, err = r.readVariants(ctx, p.ProductID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r CatalogRepository) ReadProducts(
	ctx context.Context, featuredOnly bool,
) ([]domain.Product, error) {
	const op = "CatalogRepository.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			product_id, title, slug, description,
			price, compare_at_price, images, featured, options
		FROM products
		WHERE NOT $1 OR featured
		ORDER BY title ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Variants, err = r.readVariants(ctx, p.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r CatalogRepository) scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p         domain.Product
		compareAt decimal.NullDecimal
		imagesS   string
		optionsS  string
	)
	err := row.Scan(
		&p.ProductID, &p.Title, &p.Slug, &p.Description,
		&p.Price, &compareAt, &imagesS, &p.Featured, &optionsS,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if compareAt.Valid {
		p.CompareAtPrice = &compareAt.Decimal
	}
	if err := json.Unmarshal([]byte(imagesS), &p.Images); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal([]byte(optionsS), &p.Options); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r CatalogRepository) readVariants(
	ctx context.Context, productID string,
) ([]domain.Variant, error) {
	query := `
		SELECT
			variant_id, product_id, title, price,
			compare_at_price, image, assignment, stock
		FROM variants
		WHERE product_id = $1
		ORDER BY variant_id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vs []domain.Variant
	for rows.Next() {
		var (
			v           domain.Variant
			compareAt   decimal.NullDecimal
			assignmentS string
		)
		err := rows.Scan(
			&v.VariantID, &v.ProductID, &v.Title, &v.Price,
			&compareAt, &v.Image, &assignmentS, &v.Stock,
		)
		if err != nil {
			return nil, err
		}
		if compareAt.Valid {
			v.CompareAtPrice = &compareAt.Decimal
		}
		if err := json.Unmarshal([]byte(assignmentS), &v.Assignment); err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, rows.Err()
}
