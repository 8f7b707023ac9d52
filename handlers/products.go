package handlers

import (
	"net/http"
	"sort"
	"strings"

	"coffee-shop-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required,min=2"`
	Description string   `json:"description" binding:"required,min=10"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required"`
	ImageURL    string   `json:"image_url"`
	Calories    *int     `json:"calories"`
	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"review_count"`
}

// ListProducts returns the catalog, optionally filtered by category.
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		respond(c, http.StatusOK, "Products retrieved successfully", products)
	}
}

// GetProduct returns a single product by ID.
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respond(c, http.StatusOK, "Product retrieved successfully", product)
	}
}

// SearchProducts matches a case-insensitive substring against product names
// and descriptions.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			respondError(c, http.StatusBadRequest, "Search query is required")
			return
		}
		pattern := "%" + strings.ToLower(q) + "%"

		var products []models.Product
		if err := db.
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
			Find(&products).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to search products")
			return
		}
		respond(c, http.StatusOK, "Search completed successfully", products)
	}
}

// ListByCategory returns all products in one category.
func ListByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Where("category = ?", c.Param("category")).Find(&products).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch products by category")
			return
		}
		respond(c, http.StatusOK, "Products retrieved successfully", products)
	}
}

// ListCategories returns the sorted set of distinct categories.
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []string
		if err := db.Model(&models.Product{}).
			Distinct().
			Pluck("category", &categories).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		sort.Strings(categories)
		respond(c, http.StatusOK, "Categories retrieved successfully", categories)
	}
}

// CreateProduct inserts a new catalog entry.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		product := models.Product{
			ID:          req.ID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
			Calories:    req.Calories,
			Rating:      req.Rating,
			ReviewCount: req.ReviewCount,
		}
		if product.ID == "" {
			product.ID = uuid.NewString()
		}

		if err := db.Create(&product).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to create product")
			return
		}
		respond(c, http.StatusCreated, "Product created successfully", product)
	}
}

// SeedProducts inserts the starter catalog when the table is empty. It runs
// once at startup; a failure is logged and swallowed so a seeding hiccup never
// blocks the process from serving traffic.
func SeedProducts(db *gorm.DB, log *zap.Logger) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		log.Error("product seeding failed", zap.Error(err))
		return
	}
	if count > 0 {
		log.Info("products already seeded")
		return
	}

	if err := db.Create(starterProducts()).Error; err != nil {
		log.Error("product seeding failed", zap.Error(err))
		return
	}
	log.Info("seeded starter products", zap.Int("count", len(starterProducts())))
}

func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }

func starterProducts() []models.Product {
	return []models.Product{
		{
			ID:          "prod1",
			Name:        "Caffe Mocha",
			Price:       374.00,
			Description: "A cappuccino is approximately 150 ml (5 oz) beverage, with 25 ml of espresso coffee and 85ml steamed milk topped with milk foam.",
			ImageURL:    "https://images.unsplash.com/photo-1579992357154-faf4bde95b3d?w=500&h=500&fit=crop&auto=format",
			Category:    "Coffee",
			Rating:      floatp(4.8),
			ReviewCount: intp(230),
			Calories:    intp(350),
		},
		{
			ID:          "prod2",
			Name:        "Caffe Latte",
			Price:       332.00,
			Description: "Smooth and creamy latte with rich espresso and steamed milk.",
			ImageURL:    "https://images.unsplash.com/photo-1570968915860-54d5c301fa9f?w=500&h=500&fit=crop&auto=format",
			Category:    "Coffee",
			Rating:      floatp(4.6),
			ReviewCount: intp(180),
			Calories:    intp(290),
		},
		{
			ID:          "prod3",
			Name:        "Cappuccino",
			Price:       311.25,
			Description: "Classic cappuccino with perfect balance of espresso, steamed milk and foam.",
			ImageURL:    "https://images.unsplash.com/photo-1541167760496-1628856ab772?w=500&h=500&fit=crop&auto=format",
			Category:    "Coffee",
			Rating:      floatp(4.7),
			ReviewCount: intp(156),
			Calories:    intp(320),
		},
		{
			ID:          "prod4",
			Name:        "Green Tea",
			Price:       207.50,
			Description: "Fresh and refreshing green tea with natural antioxidants.",
			ImageURL:    "https://images.unsplash.com/photo-1556679343-c7306c1976bc?w=500&h=500&fit=crop&auto=format",
			Category:    "Tea",
			Rating:      floatp(4.3),
			ReviewCount: intp(95),
			Calories:    intp(5),
		},
		{
			ID:          "prod5",
			Name:        "Earl Grey",
			Price:       228.25,
			Description: "Classic Earl Grey tea with bergamot oil flavor.",
			ImageURL:    "https://images.unsplash.com/photo-1597318374138-9c91c8b2b3f5?w=500&h=500&fit=crop&auto=format",
			Category:    "Tea",
			Rating:      floatp(4.5),
			ReviewCount: intp(128),
			Calories:    intp(8),
		},
		{
			ID:          "prod6",
			Name:        "Americano",
			Price:       249.75,
			Description: "Rich and bold coffee with hot water added to espresso.",
			ImageURL:    "https://images.unsplash.com/photo-1514432324607-a09d9b4aefdd?w=500&h=500&fit=crop&auto=format",
			Category:    "Coffee",
			Rating:      floatp(4.4),
			ReviewCount: intp(112),
			Calories:    intp(15),
		},
		{
			ID:          "prod7",
			Name:        "Iced Coffee",
			Price:       289.50,
			Description: "Refreshing cold coffee perfect for hot days.",
			ImageURL:    "https://images.unsplash.com/photo-1517556582217-7d7c2b2e7db4?w=500&h=500&fit=crop&auto=format",
			Category:    "Coffee",
			Rating:      floatp(4.2),
			ReviewCount: intp(87),
			Calories:    intp(160),
		},
		{
			ID:          "prod8",
			Name:        "Chai Latte",
			Price:       342.00,
			Description: "Spiced tea latte with aromatic blend of cinnamon, cardamom, and ginger.",
			ImageURL:    "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=500&h=500&fit=crop&auto=format",
			Category:    "Tea",
			Rating:      floatp(4.6),
			ReviewCount: intp(203),
			Calories:    intp(240),
		},
	}
}
