package models

import "time"

// Order statuses are free text in the store; these are the values the app
// itself writes.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a denormalized snapshot of a product at order time, stored as
// part of the order's JSON items column — never a live join.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	UserID          string      `json:"user_id" gorm:"not null;index"`
	Items           []OrderItem `json:"items" gorm:"serializer:json"`
	Total           float64     `json:"total" gorm:"not null"`
	Status          string      `json:"status" gorm:"not null;default:'pending'"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes"`
	OrderDate       time.Time   `json:"order_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
