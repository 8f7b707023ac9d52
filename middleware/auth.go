package middleware

import (
	"net/http"
	"strings"
	"time"

	"coffee-shop-api/config"
	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user.
func GenerateToken(s *config.Settings, user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// AuthRequired validates the bearer JWT and injects claims into the context.
// A missing header, bad signature, expired timestamp, and missing claim all
// collapse into the same unauthenticated response.
func AuthRequired(s *config.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c, "Authorization header required (Bearer <token>)")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return s.JWTSecret, nil
		})
		if err != nil || !token.Valid || claims.UserID == "" {
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, models.Response{Success: false, Message: msg})
	c.Abort()
}

// GetUserID extracts the caller's user ID from the context.
func GetUserID(c *gin.Context) string {
	val, _ := c.Get("userID")
	id, _ := val.(string)
	return id
}

// GetEmail extracts the caller's email from the context.
func GetEmail(c *gin.Context) string {
	val, _ := c.Get("email")
	email, _ := val.(string)
	return email
}
