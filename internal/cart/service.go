package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rahulnair-dev/vastra-backend/pkg/db"
	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
)

// Service exposes the per-user cart operations.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, req UpdateQuantityRequest) (*CartDTO, error)
	Remove(ctx context.Context, userID, lineID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	List(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	db       *db.Client
	repo     *Repository
	products productLoader
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	DB       *db.Client
	Repo     *Repository
	Products productLoader
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader is required")
	}
	return &service{
		db:       params.DB,
		repo:     params.Repo,
		products: params.Products,
	}, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	size := strings.TrimSpace(req.Size)

	product, err := s.products.FindProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if size != "" && !hasSize(product, size) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size not offered for this product")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindLine(ctx, userID, product.ID, size)
		if err == nil {
			return repo.IncrementQuantity(ctx, existing.ID, req.Quantity)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find cart line")
		}

		_, err = repo.Create(ctx, &models.CartItem{
			UserID:    userID,
			ProductID: product.ID,
			Quantity:  req.Quantity,
			Size:      size,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart line")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.List(ctx, userID)
}

func (s *service) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, req UpdateQuantityRequest) (*CartDTO, error) {
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	line, err := s.repo.FindLineForUser(ctx, userID, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart line")
	}

	if err := s.repo.UpdateQuantity(ctx, line.ID, req.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart quantity")
	}

	return s.List(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID, lineID uuid.UUID) (*CartDTO, error) {
	// Removing an absent line is a no-op so retries stay safe.
	if _, err := s.repo.DeleteLineForUser(ctx, userID, lineID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart line")
	}
	return s.List(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if err := s.repo.ClearByUser(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return s.List(ctx, userID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	cart := &CartDTO{
		Items: make([]LineDTO, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		line := lineFromModel(&items[i])
		cart.Items = append(cart.Items, line)
		cart.ItemCount += line.Quantity
		cart.Total = cart.Total.Add(line.Subtotal)
	}
	return cart, nil
}

func hasSize(product *models.Product, size string) bool {
	if len(product.Sizes) == 0 {
		return true
	}
	for _, s := range product.Sizes {
		if strings.EqualFold(s, size) {
			return true
		}
	}
	return false
}
