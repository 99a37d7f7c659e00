package booking

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

func TestCreateStartsPendingUnpaid(t *testing.T) {
	db := newTestDB(t)
	mgr := NewManager(db)
	userID := common.UUIDint64()

	b, err := mgr.Create(context.Background(), CreateInput{
		UserID:          userID,
		ServiceName:     "Bridal Makeup",
		ServicePrice:    15000,
		AppointmentDate: "2026-09-12",
		AppointmentTime: "10:00",
		SkinType:        "dry",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if b.Status != domain.BookingPending {
		t.Fatalf("expected pending status, got %s", b.Status)
	}
	if b.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("expected unpaid status, got %s", b.PaymentStatus)
	}
	if b.ServicePrice != 15000 {
		t.Fatalf("expected snapshot price 15000, got %v", b.ServicePrice)
	}
}

func TestSetWorkflowStatus(t *testing.T) {
	db := newTestDB(t)
	mgr := NewManager(db)
	ctx := context.Background()
	userID := common.UUIDint64()

	b, err := mgr.Create(ctx, CreateInput{UserID: userID, ServiceName: "SFX Makeup", ServicePrice: 20000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := mgr.SetWorkflowStatus(ctx, b.ID, domain.BookingApproved); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	// Re-applying the same status is a no-op.
	if err := mgr.SetWorkflowStatus(ctx, b.ID, domain.BookingApproved); err != nil {
		t.Fatalf("re-approve failed: %v", err)
	}

	got, err := mgr.ByIDForUser(ctx, b.ID, userID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.Status != domain.BookingApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	// The payment axis stays untouched by workflow changes.
	if got.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("expected payment axis unchanged, got %s", got.PaymentStatus)
	}
}

func TestSetWorkflowStatusRejectsInvalid(t *testing.T) {
	db := newTestDB(t)
	mgr := NewManager(db)

	if err := mgr.SetWorkflowStatus(context.Background(), 1, "paid"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetWorkflowStatusMissingBooking(t *testing.T) {
	db := newTestDB(t)
	mgr := NewManager(db)

	err := mgr.SetWorkflowStatus(context.Background(), 424242, domain.BookingRejected)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByIDForUserEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	mgr := NewManager(db)
	ctx := context.Background()
	owner := common.UUIDint64()

	b, err := mgr.Create(ctx, CreateInput{UserID: owner, ServiceName: "Creative Makeup", ServicePrice: 12000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := mgr.ByIDForUser(ctx, b.ID, common.UUIDint64()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
}

func TestListWithUsers(t *testing.T) {
	db := newTestDB(t)
	mgr := NewManager(db)
	ctx := context.Background()

	user := domain.User{ID: common.UUIDint64(), Name: "Wanjiru", Email: "wanjiru@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := mgr.Create(ctx, CreateInput{UserID: user.ID, ServiceName: "Soft Glam Makeup", ServicePrice: 8000}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rows, err := mgr.ListWithUsers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one booking, got %d", len(rows))
	}
	if rows[0].UserName != "Wanjiru" {
		t.Fatalf("expected joined user name, got %q", rows[0].UserName)
	}
}
