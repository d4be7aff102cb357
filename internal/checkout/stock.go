package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/rahulnair-dev/vastra-backend/pkg/errors"
)

// decrementStock applies a conditional decrement so concurrent checkouts can
// never drive stock negative. Zero rows affected means the guard failed and
// the caller must abort the transaction.
func decrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, quantity int) error {
	result := tx.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?",
		quantity, productID, quantity,
	)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "decrement stock")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "stock changed during checkout")
	}
	return nil
}
