package models

import "time"

// Favorite bookmarks a product for a user. Same pairing invariant as
// CartItem, without a quantity.
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_fav_user_product"`
	ProductID string    `json:"product_id" gorm:"not null;uniqueIndex:idx_fav_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}
