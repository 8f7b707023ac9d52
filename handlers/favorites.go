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

// GetFavorites returns the caller's bookmarked products.
func GetFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		favorites := []models.Favorite{}
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch favorites")
			return
		}
		respond(c, http.StatusOK, "Favorites retrieved successfully", favorites)
	}
}

// AddFavorite bookmarks a product. Adding an existing favorite returns it
// instead of erroring.
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		productID := c.Param("product_id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			respondError(c, http.StatusBadRequest, "Product does not exist")
			return
		}

		var favorite models.Favorite
		err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			favorite = models.Favorite{
				ID:        uuid.NewString(),
				UserID:    userID,
				ProductID: productID,
			}
			if err := db.Create(&favorite).Error; err != nil {
				respondError(c, http.StatusInternalServerError, "Failed to add to favorites")
				return
			}
		} else if err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to add to favorites")
			return
		}

		favorite.Product = &product
		respond(c, http.StatusOK, "Product added to favorites successfully", favorite)
	}
}

// RemoveFavorite deletes a bookmark; absent reads as not found.
func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		productID := c.Param("product_id")

		result := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
		if result.Error != nil {
			respondError(c, http.StatusInternalServerError, "Failed to remove from favorites")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, http.StatusNotFound, "Product not in favorites")
			return
		}
		respond(c, http.StatusOK, "Product removed from favorites successfully", nil)
	}
}

// CheckFavorite reports whether a product is bookmarked.
func CheckFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		productID := c.Param("product_id")

		var count int64
		db.Model(&models.Favorite{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count)
		respond(c, http.StatusOK, "Favorite status checked successfully", gin.H{"is_favorite": count > 0})
	}
}
