package domain

import "time"

// Product represents a catalog item sold from the shop
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Price       float64   `json:"price"` // price in main currency units (KSH)
	Description string    `gorm:"size:2048" json:"description"`
	Stock       int       `json:"stock"`                  // invariant: never negative
	Image       string    `gorm:"size:1024" json:"image"` // path to product image
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
