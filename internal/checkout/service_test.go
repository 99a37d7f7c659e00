package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/pkg/common"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) int64 {
	t.Helper()
	p := domain.Product{Name: name, Price: price, Stock: stock}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p.ID
}

func seedCartLine(t *testing.T, db *gorm.DB, userID, productID int64, qty int) {
	t.Helper()
	if err := db.Create(&domain.CartItem{UserID: userID, ProductID: productID, Quantity: qty}).Error; err != nil {
		t.Fatalf("seed cart line: %v", err)
	}
}

func productStock(t *testing.T, db *gorm.DB, id int64) int {
	t.Helper()
	var p domain.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("load product %d: %v", id, err)
	}
	return p.Stock
}

func TestFinalizeCartPaymentSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	userID := common.UUIDint64()

	productA := seedProduct(t, db, "All-Day Foundation", 200, 5)
	seedCartLine(t, db, userID, productA, 2)

	receipt, err := svc.FinalizeCartPayment(context.Background(), userID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if receipt.Total != 400 {
		t.Fatalf("expected total 400, got %v", receipt.Total)
	}
	if got := productStock(t, db, productA); got != 3 {
		t.Fatalf("expected stock 3 after checkout, got %d", got)
	}

	var cartCount int64
	db.Model(&domain.CartItem{}).Where("user_id = ?", userID).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("expected empty cart after checkout, got %d lines", cartCount)
	}

	var orders []domain.Order
	if err := db.Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		t.Fatalf("load orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(orders))
	}
	if orders[0].TotalAmount != 400 {
		t.Fatalf("expected order total 400, got %v", orders[0].TotalAmount)
	}

	var items []domain.OrderLine
	if err := json.UnmarshalFromString(orders[0].Items, &items); err != nil {
		t.Fatalf("unmarshal order snapshot: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != productA || items[0].Price != 200 || items[0].Quantity != 2 {
		t.Fatalf("unexpected order snapshot: %+v", items)
	}
}

func TestFinalizeCartPaymentInsufficientStockIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	userID := common.UUIDint64()

	productA := seedProduct(t, db, "Clay Face Mask", 100, 3)
	productB := seedProduct(t, db, "Gentle Cleanser", 50, 1)
	seedCartLine(t, db, userID, productA, 2)
	seedCartLine(t, db, userID, productB, 2)

	_, err := svc.FinalizeCartPayment(context.Background(), userID)
	ise, isStock := AsInsufficientStock(err)
	if !isStock {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if ise.ProductID != productB {
		t.Fatalf("expected insufficient stock on product %d, got %d", productB, ise.ProductID)
	}

	if got := productStock(t, db, productA); got != 3 {
		t.Fatalf("expected product A stock unchanged at 3, got %d", got)
	}
	if got := productStock(t, db, productB); got != 1 {
		t.Fatalf("expected product B stock unchanged at 1, got %d", got)
	}

	var cartCount int64
	db.Model(&domain.CartItem{}).Where("user_id = ?", userID).Count(&cartCount)
	if cartCount != 2 {
		t.Fatalf("expected cart unchanged with 2 lines, got %d", cartCount)
	}

	var orderCount int64
	db.Model(&domain.Order{}).Where("user_id = ?", userID).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("expected no order created, got %d", orderCount)
	}
}

func TestFinalizeCartPaymentEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	_, err := svc.FinalizeCartPayment(context.Background(), common.UUIDint64())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestFinalizeCartPaymentUsesCheckoutTimePrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	userID := common.UUIDint64()

	productA := seedProduct(t, db, "Vitamin C Serum", 100, 10)
	seedCartLine(t, db, userID, productA, 1)

	// The price changes between add-to-cart and checkout; the customer
	// pays the checkout-time price.
	if err := db.Model(&domain.Product{}).Where("id = ?", productA).Update("price", 150).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	receipt, err := svc.FinalizeCartPayment(context.Background(), userID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if receipt.Total != 150 {
		t.Fatalf("expected total 150 at checkout-time price, got %v", receipt.Total)
	}
}

func TestFinalizeCartPaymentStockConservation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	userID := common.UUIDint64()

	productA := seedProduct(t, db, "Mattifying Primer", 2600, 7)
	productB := seedProduct(t, db, "Balancing Toner", 1625, 4)
	seedCartLine(t, db, userID, productA, 3)
	seedCartLine(t, db, userID, productB, 4)

	before := productStock(t, db, productA) + productStock(t, db, productB)

	receipt, err := svc.FinalizeCartPayment(context.Background(), userID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	after := productStock(t, db, productA) + productStock(t, db, productB)
	purchased := 0
	for _, item := range receipt.Items {
		purchased += item.Quantity
	}
	if before-after != purchased {
		t.Fatalf("stock not conserved: before=%d after=%d purchased=%d", before, after, purchased)
	}
}

func seedBooking(t *testing.T, db *gorm.DB, userID int64, price float64, paymentStatus string) int64 {
	t.Helper()
	b := domain.Booking{
		ID:            common.UUIDint64(),
		UserID:        userID,
		ServiceName:   "Bridal Makeup",
		ServicePrice:  price,
		Status:        domain.BookingPending,
		PaymentStatus: paymentStatus,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b.ID
}

func TestFinalizeServicePaymentMarksPaid(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	userID := common.UUIDint64()
	bookingID := seedBooking(t, db, userID, 15000, domain.PaymentUnpaid)

	receipt, err := svc.FinalizeServicePayment(context.Background(), bookingID, userID)
	if err != nil {
		t.Fatalf("service payment failed: %v", err)
	}
	if receipt.Total != 15000 {
		t.Fatalf("expected total 15000, got %v", receipt.Total)
	}
	if receipt.Booking.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("expected paid status, got %s", receipt.Booking.PaymentStatus)
	}

	var b domain.Booking
	if err := db.First(&b, bookingID).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if b.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("expected booking persisted as paid, got %s", b.PaymentStatus)
	}
}

func TestFinalizeServicePaymentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	userID := common.UUIDint64()
	bookingID := seedBooking(t, db, userID, 8000, domain.PaymentUnpaid)

	first, err := svc.FinalizeServicePayment(context.Background(), bookingID, userID)
	if err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	second, err := svc.FinalizeServicePayment(context.Background(), bookingID, userID)
	if err != nil {
		t.Fatalf("second payment failed: %v", err)
	}
	if first.Total != second.Total {
		t.Fatalf("re-running payment changed total: %v vs %v", first.Total, second.Total)
	}
	if second.Booking.ID != bookingID {
		t.Fatalf("expected the same booking receipt, got %d", second.Booking.ID)
	}

	var count int64
	db.Model(&domain.Booking{}).Where("user_id = ?", userID).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single booking, got %d", count)
	}
}

func TestFinalizeServicePaymentOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	owner := common.UUIDint64()
	stranger := common.UUIDint64()
	bookingID := seedBooking(t, db, owner, 12000, domain.PaymentUnpaid)

	_, err := svc.FinalizeServicePayment(context.Background(), bookingID, stranger)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a stranger, got %v", err)
	}

	var b domain.Booking
	if err := db.First(&b, bookingID).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if b.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("expected booking to stay unpaid, got %s", b.PaymentStatus)
	}
}
