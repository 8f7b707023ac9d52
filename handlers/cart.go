package handlers

import (
	"errors"
	"net/http"

	"coffee-shop-api/middleware"
	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the caller's cart lines with their joined products. A fetch
// error yields an empty cart, never a failure.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		items := []models.CartItem{}
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			respond(c, http.StatusOK, "Cart retrieved successfully", []models.CartItem{})
			return
		}
		respond(c, http.StatusOK, "Cart retrieved successfully", items)
	}
}

// AddToCart adds a product to the cart. An existing line for the same product
// has the quantity summed into it; the read-merge-write runs in one
// transaction so concurrent adds cannot lose an update.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
			respondError(c, http.StatusBadRequest, "Product does not exist")
			return
		}

		var line models.CartItem
		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&line).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				line = models.CartItem{
					ID:        uuid.NewString(),
					UserID:    userID,
					ProductID: req.ProductID,
					Quantity:  req.Quantity,
				}
				return tx.Create(&line).Error
			}
			if err != nil {
				return err
			}
			line.Quantity += req.Quantity
			return tx.Save(&line).Error
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to add item to cart")
			return
		}

		line.Product = &product
		respond(c, http.StatusOK, "Item added to cart successfully", line)
	}
}

// UpdateCartItem sets a line's quantity. The line must belong to the caller.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		itemID := c.Param("id")

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		var line models.CartItem
		if err := db.Where("id = ? AND user_id = ?", itemID, userID).First(&line).Error; err != nil {
			respondError(c, http.StatusNotFound, "Cart item not found")
			return
		}

		line.Quantity = req.Quantity
		if err := db.Save(&line).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to update cart item")
			return
		}

		db.Preload("Product").First(&line, "id = ?", line.ID)
		respond(c, http.StatusOK, "Cart item updated successfully", line)
	}
}

// RemoveFromCart deletes one line. Ownership is re-checked at delete time so a
// line id belonging to another user reads as absent.
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		itemID := c.Param("id")

		result := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
		if result.Error != nil {
			respondError(c, http.StatusInternalServerError, "Failed to remove item")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, http.StatusNotFound, "Cart item not found")
			return
		}
		respond(c, http.StatusOK, "Item removed from cart successfully", nil)
	}
}

// ClearCart deletes every line of the caller's cart. Idempotent.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to clear cart")
			return
		}
		respond(c, http.StatusOK, "Cart cleared successfully", nil)
	}
}

// CartTotal sums quantity times price over the caller's lines. A line whose
// product lookup fails contributes zero instead of erroring the total.
func CartTotal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to calculate cart total")
			return
		}

		var total float64
		for _, item := range items {
			if item.Product == nil {
				continue
			}
			total += float64(item.Quantity) * item.Product.Price
		}
		respond(c, http.StatusOK, "Cart total calculated successfully", gin.H{"total": total})
	}
}
