package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coffee-shop-api/config"
	"coffee-shop-api/models"
	"coffee-shop-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authEnvelope struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func testSettings() *config.Settings {
	return &config.Settings{
		JWTSecret: []byte("test-secret"),
		JWTExpiry: time.Hour,
	}
}

func setupServer(t *testing.T) (*gin.Engine, *gorm.DB, *config.Settings) {
	t.Helper()

	// Foreign keys stay off so tests can stage dangling references
	// (a cart line whose product vanished).
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	s := testSettings()
	r := gin.New()
	routes.SetupRoutes(r, db, s, nil, zap.NewNop())
	return r, db, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// registerUser creates an account through the API and returns its session
// token and user id.
func registerUser(t *testing.T, r *gin.Engine, name, email string) (token, userID string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.User)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken, resp.User.ID
}

func seedProduct(t *testing.T, db *gorm.DB, id string, price float64) models.Product {
	t.Helper()

	product := models.Product{
		ID:          id,
		Name:        "Test " + id,
		Description: "test product " + id,
		Price:       price,
		Category:    "Coffee",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
