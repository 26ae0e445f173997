package router

import (
	"time"

	"markethub/internal/handlers"
	"markethub/internal/middleware"
	"markethub/internal/service"

	"github.com/gin-contrib/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// RateLimits — квоты фиксированного окна по scope.
type RateLimits struct {
	OrdersPerWindow  int
	ReviewsPerWindow int
	Window           time.Duration
}

type Deps struct {
	Auth    service.AuthService
	Catalog service.CatalogService
	Orders  service.OrderService
	Reviews service.ReviewService
	Tokens  service.TokenProvider
	Redis   middleware.RateCounter
	Limits  RateLimits
	Log     *zap.Logger
}

func Router(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	authHandler := handlers.NewAuthHandler(d.Auth, d.Log)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog, d.Log)
	orderHandler := handlers.NewOrderHandler(d.Orders, d.Log)
	reviewHandler := handlers.NewReviewHandler(d.Reviews, d.Log)

	authRequired := middleware.AuthRequired(d.Tokens, d.Log)
	ordersLimit := middleware.RateLimit(d.Redis, "orders", d.Limits.OrdersPerWindow, d.Limits.Window, d.Log)
	reviewsLimit := middleware.RateLimit(d.Redis, "reviews", d.Limits.ReviewsPerWindow, d.Limits.Window, d.Log)

	api := r.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authRequired, authHandler.Me)

	api.GET("/categories", catalogHandler.ListCategories)
	api.POST("/categories", authRequired, catalogHandler.CreateCategory)
	api.PATCH("/categories/:id", authRequired, catalogHandler.UpdateCategory)
	api.DELETE("/categories/:id", authRequired, catalogHandler.DeleteCategory)

	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:id", catalogHandler.GetProduct)
	api.POST("/products", authRequired, catalogHandler.CreateProduct)
	api.PATCH("/products/:id", authRequired, catalogHandler.UpdateProduct)
	api.DELETE("/products/:id", authRequired, catalogHandler.DeleteProduct)

	api.GET("/orders", authRequired, orderHandler.ListOrders)
	api.GET("/orders/:id", authRequired, orderHandler.GetOrder)
	api.POST("/orders", authRequired, ordersLimit, orderHandler.PlaceOrder)
	api.PATCH("/orders/:id/status", authRequired, ordersLimit, orderHandler.UpdateStatus)
	api.POST("/orders/:id/cancel", authRequired, ordersLimit, orderHandler.CancelOrder)

	api.GET("/reviews", reviewHandler.ListReviews)
	api.GET("/reviews/:id", reviewHandler.GetReview)
	api.POST("/reviews", authRequired, reviewsLimit, reviewHandler.CreateReview)
	api.PATCH("/reviews/:id", authRequired, reviewsLimit, reviewHandler.UpdateReview)
	api.DELETE("/reviews/:id", authRequired, reviewsLimit, reviewHandler.DeleteReview)

	return r
}
