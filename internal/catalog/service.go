package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahulnair-dev/vastra-backend/pkg/config"
	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
)

// Service exposes the storefront browsing surface.
type Service interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDetail, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListFeatured(ctx context.Context) ([]ProductDTO, error)
	ListRelated(ctx context.Context, productID uuid.UUID) ([]ProductDTO, error)
	Search(ctx context.Context, query string) ([]ProductDTO, error)
}

type service struct {
	repo *Repository
	cfg  config.CatalogConfig
}

// NewService constructs the catalog service.
func NewService(repo *Repository, cfg config.CatalogConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if cfg.FeaturedLimit <= 0 {
		cfg.FeaturedLimit = 8
	}
	if cfg.RelatedLimit <= 0 {
		cfg.RelatedLimit = 4
	}
	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	dto := FromProductModel(product)
	if category, err := s.repo.FindCategoryByID(ctx, product.CategoryID); err == nil {
		dto.Category = FromCategoryModel(category)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product category")
	}
	return dto, nil
}

func (s *service) GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDetail, error) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}

	products, err := s.repo.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list category products")
	}

	return &CategoryDetail{
		Category: *FromCategoryModel(category),
		Products: fromProductModels(products),
	}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	return fromCategoryModels(categories), nil
}

func (s *service) ListFeatured(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListFeatured(ctx, s.cfg.FeaturedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list featured products")
	}
	return fromProductModels(products), nil
}

func (s *service) ListRelated(ctx context.Context, productID uuid.UUID) ([]ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	related, err := s.repo.ListRelated(ctx, product.CategoryID, product.ID, s.cfg.RelatedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list related products")
	}
	return fromProductModels(related), nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductDTO, error) {
	if strings.TrimSpace(query) == "" {
		return []ProductDTO{}, nil
	}
	products, err := s.repo.SearchProducts(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search products")
	}
	return fromProductModels(products), nil
}
