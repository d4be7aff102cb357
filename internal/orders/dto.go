package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
	"github.com/rahulnair-dev/vastra-backend/pkg/enums"
)

// ItemDTO is one order line with its price frozen at purchase time.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Summary is the aggregated shape returned in the order history list.
type Summary struct {
	ID          uuid.UUID         `json:"id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      enums.OrderStatus `json:"status"`
	ItemCount   int               `json:"item_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// List wraps the paginated order history plus the next page cursor.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Detail is the full order view including its lines.
type Detail struct {
	ID              uuid.UUID         `json:"id"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          enums.OrderStatus `json:"status"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	ShippingAddress string            `json:"shipping_address,omitempty"`
	Items           []ItemDTO         `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

func itemFromModel(item *models.OrderItem) ItemDTO {
	return ItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Size:      item.Size,
		LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// DetailFromModel maps a loaded order, including items, to its transport shape.
func DetailFromModel(order *models.Order) *Detail {
	if order == nil {
		return nil
	}
	detail := &Detail{
		ID:              order.ID,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		Items:           make([]ItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for i := range order.Items {
		detail.Items = append(detail.Items, itemFromModel(&order.Items[i]))
	}
	return detail
}
