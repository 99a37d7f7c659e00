package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart rejects a cart checkout with nothing in it.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound covers a booking that does not exist or does not belong
	// to the caller.
	ErrNotFound = errors.New("not found")
)

// InsufficientStockError rejects a checkout where a line's quantity
// exceeds the product's current stock. The whole checkout fails; no order
// is created and no stock changes.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// AsInsufficientStock unwraps err into an InsufficientStockError if it is one.
func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
