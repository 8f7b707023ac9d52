package handlers

import (
	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.Response{Success: false, Message: message})
}
