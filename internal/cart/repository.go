package cart

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lavendersgloss/glossd/internal/domain"
)

// Repository is the cart ledger: one row per (user, product) pair.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddOrIncrement upserts a cart line. The increment happens at the storage
// layer (ON CONFLICT DO UPDATE quantity = quantity + n) so concurrent
// add-to-cart calls for the same line never lose updates.
func (r *Repository) AddOrIncrement(ctx context.Context, userID, productID int64, qty int) error {
	now := time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", qty),
			"updated_at": now,
		}),
	}).Create(&domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
}

// SetQuantity overwrites a line's quantity; qty <= 0 removes the line.
func (r *Repository) SetQuantity(ctx context.Context, userID, productID int64, qty int) error {
	if qty <= 0 {
		return r.db.WithContext(ctx).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&domain.CartItem{}).Error
	}
	return r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{"quantity": qty, "updated_at": time.Now()}).Error
}

// List returns the user's cart lines joined with live product data.
// Prices come from the products table at read time.
func (r *Repository) List(ctx context.Context, userID int64) ([]domain.CartLineView, error) {
	var lines []domain.CartLineView
	err := r.db.WithContext(ctx).Model(&domain.CartItem{}).
		Select("cart.product_id, products.name, products.price, products.image, cart.quantity").
		Joins("JOIN products ON products.id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Order("cart.id").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Total computes the cart total at current catalog prices.
func Total(lines []domain.CartLineView) float64 {
	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}
