package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"coffee-shop-api/auth"
	"coffee-shop-api/config"
	"coffee-shop-api/handlers"
	"coffee-shop-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	isDev := os.Getenv("ENV") != "production"
	log := initLogger(isDev)
	defer log.Sync()

	s := config.Load(log)

	db, err := config.InitDB(s, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	// Seeding failure must never block startup.
	handlers.SeedProducts(db, log)

	verifier, err := auth.NewVerifier(context.Background(), s, log)
	if err != nil {
		log.Warn("firebase verifier unavailable, firebase-auth endpoint disabled", zap.Error(err))
		verifier = nil
	}

	if !isDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Coffee Shop API",
			"version": "1.0.0",
			"health":  "/health",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "API is running"})
	})

	routes.SetupRoutes(r, db, s, verifier, log)

	log.Info("server starting", zap.String("port", s.Port))
	if err := r.Run(":" + s.Port); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func initLogger(isDev bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if isDev {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
