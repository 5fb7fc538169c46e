// File: /routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dealertrack-api/config"
	"dealertrack-api/controllers"
	"dealertrack-api/middleware"
	"dealertrack-api/permissions"
	"dealertrack-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	carController := controllers.NewCarController(db, log)
	stockController := controllers.NewStockController(db, log)
	matchController := controllers.NewMatchController(db, log, emailService)
	salespersonController := controllers.NewSalespersonController(db)
	userController := controllers.NewUserController(db)
	statsController := controllers.NewStatsController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.PUT("/auth/password", authController.ChangePassword)

		// Allocation view
		cars := protected.Group("/cars")
		{
			cars.GET("/", middleware.RequirePermission(permissions.CarView), carController.GetCars)
			cars.POST("/", middleware.RequirePermission(permissions.CarCreate), carController.CreateCar)
			cars.POST("/import", middleware.RequirePermission(permissions.CarCreate), carController.BatchImport)
			cars.PUT("/:id", middleware.RequirePermission(permissions.CarUpdate), carController.UpdateCar)
			cars.DELETE("/:id", middleware.RequirePermission(permissions.CarDelete), carController.DeleteCar)
		}

		// Stock view (delete here is the soft removal, never physical)
		stock := protected.Group("/stock")
		{
			stock.GET("/", middleware.RequirePermission(permissions.CarView), stockController.GetStock)
			stock.POST("/batch", middleware.RequirePermission(permissions.StockIn), stockController.BatchStockIn)
			stock.POST("/:id", middleware.RequirePermission(permissions.StockIn), stockController.StockIn)
			stock.DELETE("/:id", middleware.RequirePermission(permissions.StockRemove), stockController.RemoveFromStock)
		}

		// Matching view
		matches := protected.Group("/matches")
		{
			matches.GET("/", middleware.RequirePermission(permissions.MatchView), matchController.GetMatches)
			matches.POST("/", middleware.RequirePermission(permissions.MatchCreate), matchController.CreateMatch)
			matches.PUT("/:id", middleware.RequirePermission(permissions.MatchUpdate), matchController.UpdateMatch)
			matches.DELETE("/:id", middleware.RequirePermission(permissions.MatchDelete), matchController.DeleteMatch)
		}

		// Salesperson roster
		salespersons := protected.Group("/salespersons")
		{
			salespersons.GET("/", middleware.RequirePermission(permissions.SalespersonView), salespersonController.GetSalespersons)
			salespersons.POST("/", middleware.RequirePermission(permissions.SalespersonManage), salespersonController.CreateSalesperson)
			salespersons.PUT("/:id", middleware.RequirePermission(permissions.SalespersonManage), salespersonController.UpdateSalesperson)
		}

		// Account management (executive only)
		users := protected.Group("/users")
		{
			users.GET("/", middleware.RequirePermission(permissions.UserManage), userController.GetUsers)
			users.POST("/", middleware.RequirePermission(permissions.UserManage), userController.CreateUser)
			users.PUT("/:id", middleware.RequirePermission(permissions.UserManage), userController.UpdateUser)
			users.DELETE("/:id", middleware.RequirePermission(permissions.UserManage), userController.DeleteUser)
		}

		// Dashboard numbers
		stats := protected.Group("/stats")
		{
			stats.GET("/overview", middleware.RequirePermission(permissions.StatsView), statsController.GetOverview)
		}
	}
}
