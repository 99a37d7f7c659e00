package domain

import "time"

// Order is created exactly once per successful cart checkout and is
// immutable afterwards. Items holds a JSON snapshot of the purchased lines
// at their checkout-time prices.
type Order struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"index" json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Items       string    `gorm:"type:text" json:"items"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderLine is one purchased line inside an order snapshot.
type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // price at checkout time
	Quantity  int     `json:"quantity"`
}

// OrderWithUser is an order joined with the buyer's name for the admin
// dashboard listing.
type OrderWithUser struct {
	Order
	UserName string `json:"user_name"`
}
