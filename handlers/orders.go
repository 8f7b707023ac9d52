package handlers

import (
	"net/http"
	"time"

	"coffee-shop-api/middleware"
	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	Items           []models.OrderItem `json:"items" binding:"required,min=1"`
	Total           float64            `json:"total" binding:"required,gt=0"`
	DeliveryAddress string             `json:"delivery_address"`
	Notes           string             `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `form:"status" json:"status" binding:"required"`
}

// CreateOrder records an order snapshot from the submitted items.
func CreateOrder(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		order := models.Order{
			ID:              uuid.NewString(),
			UserID:          userID,
			Items:           req.Items,
			Total:           req.Total,
			Status:          models.OrderStatusPending,
			DeliveryAddress: req.DeliveryAddress,
			Notes:           req.Notes,
			OrderDate:       time.Now().UTC(),
		}
		if err := db.Create(&order).Error; err != nil {
			log.Error("order creation failed", zap.Error(err), zap.String("user_id", userID))
			respondError(c, http.StatusInternalServerError, "Failed to create order")
			return
		}
		respond(c, http.StatusCreated, "Order created successfully", order)
	}
}

// GetOrders returns the caller's orders, newest first.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		orders := []models.Order{}
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}
		respond(c, http.StatusOK, "Orders retrieved successfully", orders)
	}
}

// GetOrder returns one of the caller's orders; someone else's order id reads
// as absent.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		orderID := c.Param("id")

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		respond(c, http.StatusOK, "Order retrieved successfully", order)
	}
}

// UpdateOrderStatus sets an order's status. Any authenticated caller may use
// it; there is no role system yet.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBind(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", req.Status)
		if result.Error != nil {
			respondError(c, http.StatusInternalServerError, "Failed to update order status")
			return
		}
		if result.RowsAffected == 0 {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}

		var order models.Order
		db.First(&order, "id = ?", orderID)
		respond(c, http.StatusOK, "Order status updated successfully", order)
	}
}
