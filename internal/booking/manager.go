package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/lavendersgloss/glossd/internal/domain"
	"github.com/lavendersgloss/glossd/pkg/common"
)

var (
	ErrNotFound      = errors.New("booking not found")
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Manager handles service appointment records. The workflow status axis
// (pending/approved/rejected) is admin-driven; the payment axis is owned
// by the checkout service and never touched here.
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// CreateInput carries the customer-submitted booking fields. ServiceName
// and ServicePrice are snapshotted from the service list at booking time.
type CreateInput struct {
	UserID          int64
	ServiceName     string
	ServicePrice    float64
	AppointmentDate string
	AppointmentTime string
	SkinType        string
	Notes           string
}

// Create records a new booking in the pending/unpaid state.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	now := time.Now()
	b := domain.Booking{
		ID:              common.UUIDint64(),
		UserID:          in.UserID,
		ServiceName:     in.ServiceName,
		ServicePrice:    in.ServicePrice,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		SkinType:        in.SkinType,
		Notes:           in.Notes,
		Status:          domain.BookingPending,
		PaymentStatus:   domain.PaymentUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := m.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ByIDForUser returns the booking only if it belongs to the given user.
func (m *Manager) ByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := m.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SetWorkflowStatus flips a booking to approved or rejected. Re-applying
// the same status is a no-op, not an error.
func (m *Manager) SetWorkflowStatus(ctx context.Context, id int64, status string) error {
	if status != domain.BookingApproved && status != domain.BookingRejected {
		return ErrInvalidStatus
	}
	res := m.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWithUsers returns all bookings joined with the booking user's name,
// newest first, for the admin dashboard.
func (m *Manager) ListWithUsers(ctx context.Context) ([]domain.BookingWithUser, error) {
	var rows []domain.BookingWithUser
	err := m.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("bookings.*, users.name AS user_name").
		Joins("JOIN users ON users.id = bookings.user_id").
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
