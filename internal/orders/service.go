package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
	"github.com/rahulnair-dev/vastra-backend/pkg/pagination"
)

// Service exposes the order history surface.
type Service interface {
	Get(ctx context.Context, userID, orderID uuid.UUID) (*Detail, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the orders read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*Detail, error) {
	order, err := s.repo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Foreign orders look identical to missing ones.
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return DetailFromModel(order), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*List, error) {
	// Surface a malformed cursor as a client error before touching the DB.
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, nextCursor, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	list := &List{
		Orders:     make([]Summary, 0, len(rows)),
		NextCursor: nextCursor,
	}
	for i := range rows {
		order := &rows[i]
		count := 0
		for j := range order.Items {
			count += order.Items[j].Quantity
		}
		list.Orders = append(list.Orders, Summary{
			ID:          order.ID,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			ItemCount:   count,
			CreatedAt:   order.CreatedAt,
		})
	}
	return list, nil
}
