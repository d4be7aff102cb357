package checkout

import (
	"github.com/google/uuid"
)

// PlaceOrderRequest is the payload accepted by the checkout endpoint.
type PlaceOrderRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"required"`
	ShippingAddress string `json:"shipping_address,omitempty"`
}

// StockShortage describes one cart line that cannot be fulfilled.
type StockShortage struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}
