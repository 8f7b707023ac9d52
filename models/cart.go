package models

import "time"

// CartItem is one line of a user's cart. The composite unique index enforces
// at most one line per (user, product) pair; adding the same product again
// merges into the existing line instead of inserting a duplicate.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID string    `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
