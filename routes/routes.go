package routes

import (
	"coffee-shop-api/auth"
	"coffee-shop-api/config"
	"coffee-shop-api/handlers"
	"coffee-shop-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes registers every endpoint. The verifier may be nil when Firebase
// is not configured; the firebase-auth endpoint then reports unavailable.
func SetupRoutes(r *gin.Engine, db *gorm.DB, s *config.Settings, verifier *auth.Verifier, log *zap.Logger) {
	// ── Public auth ────────────────────────────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register(db, s))
		authGroup.POST("/login", handlers.Login(db, s))
		authGroup.POST("/firebase-auth", handlers.FirebaseAuth(db, s, verifier, log))
		authGroup.POST("/forgot-password", handlers.ForgotPassword(db, log))
	}

	// ── Authenticated profile ──────────────────────────────────────
	profile := r.Group("/auth")
	profile.Use(middleware.AuthRequired(s))
	{
		profile.GET("/me", handlers.Me(db))
		profile.GET("/profile", handlers.GetProfile(db))
		profile.PUT("/profile", handlers.UpdateProfile(db, log))
	}

	// ── Catalog (public reads, authenticated create) ───────────────
	products := r.Group("/products")
	{
		products.GET("", handlers.ListProducts(db))
		products.GET("/search", handlers.SearchProducts(db))
		products.GET("/categories", handlers.ListCategories(db))
		products.GET("/category/:category", handlers.ListByCategory(db))
		products.GET("/:id", handlers.GetProduct(db))
	}
	r.POST("/products", middleware.AuthRequired(s), handlers.CreateProduct(db))

	// ── Cart ───────────────────────────────────────────────────────
	cart := r.Group("/cart")
	cart.Use(middleware.AuthRequired(s))
	{
		cart.GET("", handlers.GetCart(db))
		cart.POST("/add", handlers.AddToCart(db))
		cart.PUT("/update/:id", handlers.UpdateCartItem(db))
		cart.GET("/total", handlers.CartTotal(db))
		cart.DELETE("/clear", handlers.ClearCart(db))
		cart.DELETE("/:id", handlers.RemoveFromCart(db))
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired(s))
	{
		orders.GET("", handlers.GetOrders(db))
		orders.POST("", handlers.CreateOrder(db, log))
		orders.GET("/:id", handlers.GetOrder(db))
		orders.PUT("/:id/status", handlers.UpdateOrderStatus(db))
	}

	// ── Favorites ──────────────────────────────────────────────────
	favorites := r.Group("/favorites")
	favorites.Use(middleware.AuthRequired(s))
	{
		favorites.GET("", handlers.GetFavorites(db))
		favorites.POST("/:product_id", handlers.AddFavorite(db))
		favorites.DELETE("/:product_id", handlers.RemoveFavorite(db))
		favorites.GET("/:product_id/check", handlers.CheckFavorite(db))
	}
}
