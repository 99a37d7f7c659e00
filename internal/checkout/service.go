package checkout

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/pkg/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Service runs the order/payment/inventory transitions. Every mutation a
// checkout makes happens inside a single database transaction: either the
// order exists, stock went down and the cart is empty, or nothing changed.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CartReceipt is what the customer sees after a successful cart checkout.
type CartReceipt struct {
	OrderID   int64              `json:"order_id"`
	Items     []domain.OrderLine `json:"items"`
	Total     float64            `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
}

// ServiceReceipt is the receipt for a paid booking at its snapshot price.
type ServiceReceipt struct {
	Booking domain.Booking `json:"booking"`
	Total   float64        `json:"total"`
}

// checkoutLine is a cart line joined with the current product state inside
// the checkout transaction.
type checkoutLine struct {
	ProductID int64
	Name      string
	Price     float64
	Stock     int
	Quantity  int
}

// FinalizeCartPayment converts the user's cart into a paid order.
//
// Inside one transaction it: loads the cart joined with current prices
// (the customer pays the price at checkout, not at add-to-cart), validates
// every line against current stock, creates the order with its line-item
// snapshot, decrements stock with a guarded update, and clears the cart.
// Any failure rolls the whole thing back.
func (s *Service) FinalizeCartPayment(ctx context.Context, userID int64) (*CartReceipt, error) {
	var receipt *CartReceipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.loadCartLines(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		// Validate every line before touching anything.
		for _, line := range lines {
			if line.Quantity > line.Stock {
				return &InsufficientStockError{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: line.Stock,
				}
			}
		}

		var total float64
		items := make([]domain.OrderLine, 0, len(lines))
		for _, line := range lines {
			total += line.Price * float64(line.Quantity)
			items = append(items, domain.OrderLine{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Quantity:  line.Quantity,
			})
		}

		snapshot, err := json.MarshalToString(items)
		if err != nil {
			return errors.Wrap(err, "marshal order items")
		}

		order := domain.Order{
			ID:          common.UUIDint64(),
			UserID:      userID,
			TotalAmount: total,
			Items:       snapshot,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return errors.Wrap(err, "create order")
		}

		// Guarded decrements: the stock >= qty condition re-checks the
		// invariant at write time, so a concurrent checkout that drained
		// stock after our read fails here and rolls everything back.
		for _, line := range lines {
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				UpdateColumns(map[string]interface{}{
					"stock":      gorm.Expr("stock - ?", line.Quantity),
					"updated_at": time.Now(),
				})
			if res.Error != nil {
				return errors.Wrap(res.Error, "decrement stock")
			}
			if res.RowsAffected != 1 {
				return &InsufficientStockError{
					ProductID: line.ProductID,
					Requested: line.Quantity,
					Available: line.Stock,
				}
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
			return errors.Wrap(err, "clear cart")
		}

		receipt = &CartReceipt{
			OrderID:   order.ID,
			Items:     items,
			Total:     total,
			CreatedAt: order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// loadCartLines reads the user's cart joined with live product rows. On
// Postgres the product rows are locked for the rest of the transaction.
func (s *Service) loadCartLines(tx *gorm.DB, userID int64) ([]checkoutLine, error) {
	q := tx.Model(&domain.CartItem{}).
		Select("cart.product_id, products.name, products.price, products.stock, cart.quantity").
		Joins("JOIN products ON products.id = cart.product_id").
		Where("cart.user_id = ?", userID).
		Order("cart.id")
	if strings.EqualFold(tx.Name(), "postgres") {
		q = q.Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "products"},
		})
	}
	var lines []checkoutLine
	if err := q.Scan(&lines).Error; err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	return lines, nil
}

// FinalizeServicePayment flips a booking to paid and returns its receipt.
// A booking that is already paid is returned unchanged: re-submitting the
// payment page never double-charges or errors.
func (s *Service) FinalizeServicePayment(ctx context.Context, bookingID, userID int64) (*ServiceReceipt, error) {
	var receipt *ServiceReceipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		err := tx.Where("id = ? AND user_id = ?", bookingID, userID).First(&b).Error
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load booking")
		}

		if b.PaymentStatus != domain.PaymentPaid {
			if err := tx.Model(&domain.Booking{}).
				Where("id = ?", b.ID).
				Updates(map[string]interface{}{
					"payment_status": domain.PaymentPaid,
					"updated_at":     time.Now(),
				}).Error; err != nil {
				return errors.Wrap(err, "mark booking paid")
			}
			b.PaymentStatus = domain.PaymentPaid
		}

		receipt = &ServiceReceipt{Booking: b, Total: b.ServicePrice}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
