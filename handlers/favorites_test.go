package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"coffee-shop-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesAddIsIdempotent(t *testing.T) {
	r, db, _ := setupServer(t)
	token, userID := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)

	w := doJSON(t, r, http.MethodPost, "/favorites/p1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Adding again returns the existing favorite instead of erroring.
	w = doJSON(t, r, http.MethodPost, "/favorites/p1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestFavoritesCheckAndList(t *testing.T) {
	r, db, _ := setupServer(t)
	token, _ := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)
	seedProduct(t, db, "p2", 200)

	doJSON(t, r, http.MethodPost, "/favorites/p1", token, nil)

	w := doJSON(t, r, http.MethodGet, "/favorites/p1/check", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var check struct {
		IsFavorite bool `json:"is_favorite"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.True(t, check.IsFavorite)

	w = doJSON(t, r, http.MethodGet, "/favorites/p2/check", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.False(t, check.IsFavorite)

	w = doJSON(t, r, http.MethodGet, "/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	var favorites []models.Favorite
	require.NoError(t, json.Unmarshal(env.Data, &favorites))
	require.Len(t, favorites, 1)
	require.NotNil(t, favorites[0].Product)
	assert.Equal(t, "p1", favorites[0].Product.ID)
}

func TestFavoritesRemove(t *testing.T) {
	r, db, _ := setupServer(t)
	token, _ := registerUser(t, r, "Ann", "ann@x.com")
	seedProduct(t, db, "p1", 100)

	doJSON(t, r, http.MethodPost, "/favorites/p1", token, nil)

	w := doJSON(t, r, http.MethodDelete, "/favorites/p1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Removing again reports not found.
	w = doJSON(t, r, http.MethodDelete, "/favorites/p1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesUnknownProduct(t *testing.T) {
	r, _, _ := setupServer(t)
	token, _ := registerUser(t, r, "Ann", "ann@x.com")

	w := doJSON(t, r, http.MethodPost, "/favorites/nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
