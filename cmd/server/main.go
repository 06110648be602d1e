package main

import (
	"log"
	"time"

	"pos-backend/config"
	"pos-backend/internal/handler"
	"pos-backend/internal/middleware"
	"pos-backend/internal/models"
	"pos-backend/internal/notify"
	"pos-backend/internal/service"
	"pos-backend/pkg/database"
	"pos-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()
	logger.Setup(config.AppConfig.Server.Env, "info")

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")
	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Otp{},
		&models.Category{},
		&models.Item{},
		&models.Bill{},
		&models.BillLine{},
		&models.Sequence{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedAdmin()

	// 4. Wire Services
	cfg := config.AppConfig
	notifier := notify.FromConfig(notify.Config{
		GatewayURL: cfg.Notifier.GatewayURL,
		APIKey:     cfg.Notifier.APIKey,
		SenderID:   cfg.Notifier.SenderID,
	})
	sequencer := service.NewBillSequencer(database.DB, cfg.Billing.BillPrefix, cfg.Billing.BillPad)
	billingSvc := service.NewBillingService(database.DB, sequencer)
	reportingSvc := service.NewReportingService(database.DB, cfg.ReportLocation(), nil)
	authSvc := service.NewAuthService(database.DB, notifier, cfg.Otp)

	// 5. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. Setup Routes
	authHandler := handler.NewAuthHandler(authSvc)
	userRoutes := r.Group("/api/v1/users")
	{
		userRoutes.POST("/signup", authHandler.Signup)
		userRoutes.POST("/verify-signup", authHandler.VerifySignup)
		userRoutes.POST("/login", authHandler.Login)
		userRoutes.POST("/verify-otp", authHandler.VerifyOtp)
	}

	adminHandler := handler.NewAdminHandler(database.DB)
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		adminRoutes.POST("/create-user", adminHandler.CreateUser)
	}

	billingHandler := handler.NewBillingHandler(billingSvc)
	billRoutes := r.Group("/api/v1/bills")
	billRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		billRoutes.POST("", billingHandler.CreateBill)
		billRoutes.PUT("/:id", billingHandler.EditBill)
		billRoutes.PATCH("/:id/status", billingHandler.UpdateBillStatus)
		billRoutes.DELETE("/:id", billingHandler.DeleteBill)
		billRoutes.GET("/id/:billId", billingHandler.GetBillByBillId)
		billRoutes.GET("/all", billingHandler.GetAllBills)
		billRoutes.GET("/users/search", billingHandler.SearchUserByPhone)
		billRoutes.GET("/user", billingHandler.GetBillsByUserPhone)
	}

	itemHandler := handler.NewItemHandler(database.DB)
	itemRoutes := r.Group("/api/v1/items")
	itemRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		itemRoutes.GET("", itemHandler.GetAllItems)
		itemRoutes.POST("", itemHandler.CreateItem)
		itemRoutes.GET("/search", itemHandler.SearchItems)
		itemRoutes.GET("/:id", itemHandler.GetItemById)
		itemRoutes.PUT("/:id", itemHandler.UpdateItem)
		itemRoutes.DELETE("/:id", itemHandler.DeleteItem)
		itemRoutes.POST("/:id/rating", itemHandler.AddRating)
	}

	categoryHandler := handler.NewCategoryHandler(database.DB)
	categoryRoutes := r.Group("/api/v1/categories")
	categoryRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		categoryRoutes.GET("", categoryHandler.GetAllCategories)
		categoryRoutes.POST("", categoryHandler.CreateCategory)
		categoryRoutes.GET("/:id", categoryHandler.GetCategoryById)
		categoryRoutes.PUT("/:id", categoryHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	reportHandler := handler.NewReportHandler(reportingSvc)
	reportRoutes := r.Group("/api/v1/reports")
	reportRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		reportRoutes.GET("/dashboard", reportHandler.GetDashboardStats)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 7. Start Server
	port := cfg.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
