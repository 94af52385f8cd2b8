// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clearlabel/transparency-backend/internal/assistant"
	"github.com/clearlabel/transparency-backend/internal/config"
	"github.com/clearlabel/transparency-backend/internal/handlers"
	"github.com/clearlabel/transparency-backend/internal/middleware"
	"github.com/clearlabel/transparency-backend/internal/services"
	"github.com/clearlabel/transparency-backend/internal/store"
	"github.com/clearlabel/transparency-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize stores and the assistant client
	productStore := store.NewGormProductStore(db)
	userStore := store.NewGormUserStore(db)
	assistantClient := assistant.NewClient(cfg.Assistant)

	// Initialize services
	authService := services.NewAuthService(userStore, cfg)
	productService := services.NewProductService(productStore, assistantClient)
	questionService := services.NewQuestionService()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	questionHandler := handlers.NewQuestionHandler(questionService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Product routes
		products := api.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/score", productHandler.ScoreProduct)
			products.GET("/:id/report", productHandler.GetProductReport)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Deterministic follow-up question generation
		api.POST("/generate-questions", questionHandler.GenerateFollowUps)
	}

	return r
}
