package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductReader = ResolverService{}
var _ port.VariantResolver = ResolverService{}

// ResolverService joins the catalog with the pure resolution logic.
type ResolverService struct {
	catalog port.CatalogStorage
}

func NewResolverService(catalog port.CatalogStorage) ResolverService {
	return ResolverService{catalog}
}

func (s ResolverService) Product(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "ResolverService.Product"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalog.ReadProductBySlug(ctx, slug)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s ResolverService) Products(
	ctx context.Context, featuredOnly bool,
) ([]domain.Product, error) {
	const op = "ResolverService.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.catalog.ReadProducts(ctx, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// Resolve recomputes pricing and availability for the current selection.
func (s ResolverService) Resolve(
	ctx context.Context, slug string, selection domain.OptionSelection,
) (domain.ResolvedVariant, error) {
	const op = "ResolverService.Resolve"

	p, err := s.Product(ctx, slug)
	if err != nil {
		return domain.ResolvedVariant{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Resolve(p, selection), nil
}
