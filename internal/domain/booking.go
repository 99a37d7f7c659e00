package domain

import "time"

// Booking workflow statuses, admin-driven and one-way.
const (
	BookingPending  = "pending"
	BookingApproved = "approved"
	BookingRejected = "rejected"
)

// Booking payment statuses, checkout-driven and one-way.
// The payment axis is independent of the workflow axis.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Booking is a service appointment with a price snapshot taken at booking
// time. ServicePrice is what the customer pays regardless of later changes
// to the service list.
type Booking struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"index" json:"user_id"`
	ServiceName     string    `gorm:"size:200" json:"service_name"`
	ServicePrice    float64   `json:"service_price"`
	AppointmentDate string    `gorm:"size:32" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:32" json:"appointment_time"`
	SkinType        string    `gorm:"size:32" json:"skin_type"`
	Notes           string    `gorm:"size:2048" json:"notes"`
	Status          string    `gorm:"size:16;default:pending" json:"status"`
	PaymentStatus   string    `gorm:"size:16;default:unpaid" json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookingWithUser is a booking joined with the booking user's name for the
// admin dashboard listing.
type BookingWithUser struct {
	Booking
	UserName string `json:"user_name"`
}
