package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartMergesQuantity(t *testing.T) {
	r, db, _ := setupServer(t)
	token, userID := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)

	w := doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p1", "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	var lines []models.CartItem
	require.NoError(t, db.Where("user_id = ?", userID).Find(&lines).Error)
	require.Len(t, lines, 1, "double add must not duplicate the line")
	assert.Equal(t, 5, lines[0].Quantity)

	// The API view agrees.
	w = doJSON(t, r, http.MethodGet, "/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "p1", items[0].Product.ID)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r, _, _ := setupServer(t)
	token, _ := registerUser(t, r, "Ann", "ann@x.com")

	w := doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "nope", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	r, db, _ := setupServer(t)
	token, _ := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)

	w := doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p1", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItem(t *testing.T) {
	r, db, _ := setupServer(t)
	token, userID := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)

	doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p1", "quantity": 2})

	var line models.CartItem
	require.NoError(t, db.First(&line, "user_id = ?", userID).Error)

	w := doJSON(t, r, http.MethodPut, "/cart/update/"+line.ID, token, gin.H{"quantity": 7})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&line, "id = ?", line.ID).Error)
	assert.Equal(t, 7, line.Quantity)
}

func TestRemoveForeignCartLineIsNotFound(t *testing.T) {
	r, db, _ := setupServer(t)
	annToken, annID := registerUser(t, r, "Ann", "ann@x.com")
	bobToken, _ := registerUser(t, r, "Bob", "bob@x.com")
	seedProduct(t, db, "p1", 100)

	doJSON(t, r, http.MethodPost, "/cart/add", annToken, gin.H{"product_id": "p1", "quantity": 1})

	var annLine models.CartItem
	require.NoError(t, db.First(&annLine, "user_id = ?", annID).Error)

	// Bob cannot remove or update Ann's line even though the id exists.
	w := doJSON(t, r, http.MethodDelete, "/cart/"+annLine.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/cart/update/"+annLine.ID, bobToken, gin.H{"quantity": 9})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The line is untouched.
	require.NoError(t, db.First(&annLine, "id = ?", annLine.ID).Error)
	assert.Equal(t, 1, annLine.Quantity)
}

func TestClearCartIdempotent(t *testing.T) {
	r, db, _ := setupServer(t)
	token, userID := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)

	doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p1", "quantity": 2})

	w := doJSON(t, r, http.MethodDelete, "/cart/clear", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&count)
	assert.Zero(t, count)

	// Clearing an already empty cart still succeeds.
	w = doJSON(t, r, http.MethodDelete, "/cart/clear", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartTotal(t *testing.T) {
	r, db, _ := setupServer(t)
	token, userID := registerUser(t, r, "Ann", "ann@x.com")

	// Empty cart totals exactly zero.
	w := doJSON(t, r, http.MethodGet, "/cart/total", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var got struct {
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Zero(t, got.Total)

	seedProduct(t, db, "p1", 100)
	seedProduct(t, db, "p2", 250)
	doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p1", "quantity": 2})
	doJSON(t, r, http.MethodPost, "/cart/add", token, gin.H{"product_id": "p2", "quantity": 1})

	// A line whose product no longer resolves contributes zero, not an error.
	dangling := models.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: "vanished",
		Quantity:  4,
	}
	require.NoError(t, db.Create(&dangling).Error)

	w = doJSON(t, r, http.MethodGet, "/cart/total", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 2*100.0+1*250.0, got.Total)
}
