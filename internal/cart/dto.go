package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rahulnair-dev/vastra-backend/pkg/db/models"
)

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Size      string    `json:"size,omitempty"`
}

// UpdateQuantityRequest replaces the quantity on an existing cart line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// LineProduct is the product summary embedded in each cart line.
type LineProduct struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Stock    int             `json:"stock"`
}

// LineDTO is one cart line with its computed subtotal.
type LineDTO struct {
	ID        uuid.UUID       `json:"id"`
	Product   LineProduct     `json:"product"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
}

// CartDTO is the full cart view returned to the shopper.
type CartDTO struct {
	Items     []LineDTO       `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

func lineFromModel(item *models.CartItem) LineDTO {
	line := LineDTO{
		ID:        item.ID,
		Quantity:  item.Quantity,
		Size:      item.Size,
		CreatedAt: item.CreatedAt,
	}
	if item.Product != nil {
		line.Product = LineProduct{
			ID:       item.Product.ID,
			Name:     item.Product.Name,
			Price:    item.Product.Price,
			ImageURL: item.Product.ImageURL,
			Stock:    item.Product.Stock,
		}
		line.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return line
}
