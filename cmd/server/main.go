package main

import (
	"log"
	"time"

	"github.com/nimamdd/medident/internal/config"
	"github.com/nimamdd/medident/internal/database"
	"github.com/nimamdd/medident/internal/handlers"
	"github.com/nimamdd/medident/internal/middleware"
	"github.com/nimamdd/medident/internal/migrations"
	"github.com/nimamdd/medident/internal/redis"
	"github.com/nimamdd/medident/internal/repository"
	"github.com/nimamdd/medident/internal/services"
	"github.com/nimamdd/medident/pkg/sms"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db, cfg.AdminPhone); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize SMS gateway client
	smsClient := sms.NewClient(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSLineNumber)

	// Initialize store and services
	store := repository.NewStore(db)

	userService := services.NewUserService(store)
	authService := services.NewAuthService(
		userService,
		redisClient,
		smsClient,
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLHours)*time.Hour,
		time.Duration(cfg.OTPTTLMinutes)*time.Minute,
		cfg.OTPMaxAttempts,
	)
	productService := services.NewProductService(store)
	salesService := services.NewSalesService(store)
	checkoutService := services.NewCheckoutService(store)
	orderService := services.NewOrderService(store, salesService)
	dashboardService := services.NewDashboardService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)
	adminHandler := handlers.NewAdminHandler(orderService, salesService, dashboardService, productService, userService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/otp/request", authHandler.RequestOTP)
		api.POST("/auth/otp/verify", authHandler.VerifyOTP)

		api.GET("/categories", productHandler.ListCategories)
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:slug", productHandler.GetProduct)
	}

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(cfg.JWTSecret, userService))
	{
		authorized.GET("/me", userHandler.Me)
		authorized.PATCH("/me", userHandler.UpdateMe)

		authorized.POST("/products/:slug/reviews", productHandler.CreateReview)

		authorized.POST("/checkout", orderHandler.CreateCheckout)
		authorized.GET("/orders", orderHandler.ListMyOrders)
		authorized.GET("/orders/:order_number", orderHandler.GetMyOrder)
		authorized.PATCH("/orders/:order_number/payment", orderHandler.UpdatePayment)
	}

	admin := authorized.Group("/admin")
	admin.Use(middleware.StaffRequired())
	{
		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/:order_number", adminHandler.GetOrder)
		admin.PATCH("/orders/:order_number/fulfillment", adminHandler.UpdateFulfillment)
		admin.PATCH("/reviews/:id", adminHandler.ModerateReview)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/sales/daily", adminHandler.DailySales)
		admin.GET("/dashboard/overview", adminHandler.DashboardOverview)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
