package domain

import "time"

// CartItem is one (user, product) line in a shopping cart.
// Uniqueness on the pair gives add-to-cart its upsert semantics.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int64     `gorm:"uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart"
}

// CartLineView is a cart line joined with live product data. Price always
// reflects the catalog at read time, never the moment of add-to-cart.
type CartLineView struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
