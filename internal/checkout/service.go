package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rahulnair-dev/vastra-backend/internal/accounts"
	"github.com/rahulnair-dev/vastra-backend/internal/cart"
	"github.com/rahulnair-dev/vastra-backend/internal/orders"
	"github.com/rahulnair-dev/vastra-backend/pkg/db"
	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
	"github.com/rahulnair-dev/vastra-backend/pkg/logger"
)

// Service turns a shopper's cart into an order in one atomic step.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*orders.Detail, error)
}

type service struct {
	db       *db.Client
	carts    *cart.Repository
	orders   *orders.Repository
	accounts *accounts.Repository
	logg     *logger.Logger
}

// ServiceParams bundles the checkout dependencies.
type ServiceParams struct {
	DB       *db.Client
	Carts    *cart.Repository
	Orders   *orders.Repository
	Accounts *accounts.Repository
	Logger   *logger.Logger
}

// NewService constructs the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts repository is required")
	}
	return &service{
		db:       params.DB,
		carts:    params.Carts,
		orders:   params.Orders,
		accounts: params.Accounts,
		logg:     params.Logger,
	}, nil
}

// PlaceOrder validates every cart line, freezes prices into order items,
// decrements stock, and clears the cart. The whole sequence runs inside one
// transaction: any failure leaves cart, stock, and orders untouched.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*orders.Detail, error) {
	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment_method is required")
	}

	var placed *models.Order

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)

		lines, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		if err := validateLines(lines); err != nil {
			return err
		}

		shippingAddress, err := s.resolveShippingAddress(ctx, tx, userID, req.ShippingAddress)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for i := range lines {
			qty := decimal.NewFromInt(int64(lines[i].Quantity))
			total = total.Add(lines[i].Product.Price.Mul(qty))
		}

		order, err := orderRepo.Create(ctx, &models.Order{
			UserID:          userID,
			TotalAmount:     total,
			PaymentMethod:   paymentMethod,
			ShippingAddress: shippingAddress,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		items := make([]models.OrderItem, 0, len(lines))
		for i := range lines {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: lines[i].ProductID,
				Quantity:  lines[i].Quantity,
				Price:     lines[i].Product.Price,
				Size:      lines[i].Size,
			})
		}
		if err := orderRepo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order items")
		}

		for i := range lines {
			if err := decrementStock(ctx, tx, lines[i].ProductID, lines[i].Quantity); err != nil {
				return err
			}
		}

		if err := cartRepo.ClearByUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		placed = order
		placed.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, placed.ID.String())
		s.logg.Info(logCtx, "order placed")
	}
	return orders.DetailFromModel(placed), nil
}

// validateLines checks product availability and stock for every line before
// anything is written, so the shopper sees all problems at once.
func validateLines(lines []models.CartItem) error {
	var combined error
	shortages := make([]StockShortage, 0)

	for i := range lines {
		line := &lines[i]
		if line.Product == nil {
			return pkgerrors.New(pkgerrors.CodeProductUnavailable, "a cart item is no longer available").
				WithDetails(map[string]any{"product_id": line.ProductID})
		}
		if line.Product.Stock < line.Quantity {
			shortages = append(shortages, StockShortage{
				ProductID: line.ProductID,
				Name:      line.Product.Name,
				Requested: line.Quantity,
				Available: line.Product.Stock,
			})
			combined = multierr.Append(combined, fmt.Errorf(
				"%s: requested %d, available %d",
				line.Product.Name, line.Quantity, line.Product.Stock,
			))
		}
	}

	if combined != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInsufficientStock, combined, "insufficient stock").
			WithDetails(map[string]any{"shortages": shortages})
	}
	return nil
}

func (s *service) resolveShippingAddress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, provided string) (string, error) {
	address := strings.TrimSpace(provided)
	if address != "" {
		return address, nil
	}

	user, err := s.accounts.WithTx(tx).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if user.Address != nil {
		if stored := strings.TrimSpace(*user.Address); stored != "" {
			return stored, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "shipping_address is required")
}
