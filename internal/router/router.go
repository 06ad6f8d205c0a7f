package router

import (
	"fintrack/internal/config"
	"fintrack/internal/handler"
	"fintrack/internal/middleware"
	"fintrack/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine with the full API surface.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	users := store.NewUserStore(db, cfg.Auth.BcryptCost)
	categories := store.NewCategoryStore(db)
	transactions := store.NewTransactionStore(db)
	planned := store.NewPlannedExpenseStore(db)
	savings := store.NewSavingStore(db)
	goals := store.NewGoalStore(db)
	profiles := store.NewProfileStore(db)

	authHandler := handler.NewAuthHandler(users, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	categoryHandler := handler.NewCategoryHandler(categories)
	transactionHandler := handler.NewTransactionHandler(transactions)
	plannedHandler := handler.NewPlannedExpenseHandler(planned)
	savingHandler := handler.NewSavingHandler(savings)
	goalHandler := handler.NewGoalHandler(goals)
	profileHandler := handler.NewProfileHandler(profiles)
	statsHandler := handler.NewStatsHandler(transactions, planned, savings)
	exportHandler := handler.NewExportHandler(transactions)
	adminHandler := handler.NewAdminHandler(users)

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	protected := r.Group("")
	protected.Use(middleware.Auth(cfg.JWT.Secret, db))

	protected.GET("/auth/me", authHandler.Me)

	protected.GET("/categories", categoryHandler.List)
	protected.POST("/categories", categoryHandler.Create)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.GET("/transactions/export/csv", exportHandler.CSV)
	protected.GET("/transactions/export/xlsx", exportHandler.XLSX)
	protected.GET("/transactions/:id", transactionHandler.Get)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	protected.GET("/planned-expenses", plannedHandler.List)
	protected.POST("/planned-expenses", plannedHandler.Create)
	protected.GET("/planned-expenses/:id", plannedHandler.Get)
	protected.PUT("/planned-expenses/:id", plannedHandler.Update)
	protected.DELETE("/planned-expenses/:id", plannedHandler.Delete)

	protected.GET("/savings", savingHandler.List)
	protected.POST("/savings", savingHandler.Create)
	protected.GET("/savings/:id", savingHandler.Get)
	protected.PUT("/savings/:id", savingHandler.Update)
	protected.DELETE("/savings/:id", savingHandler.Delete)

	protected.GET("/goals", goalHandler.List)
	protected.POST("/goals", goalHandler.Create)
	protected.GET("/goals/:id", goalHandler.Get)
	protected.PUT("/goals/:id", goalHandler.Update)
	protected.DELETE("/goals/:id", goalHandler.Delete)

	protected.GET("/profile", profileHandler.Get)
	protected.PUT("/profile", profileHandler.Update)

	protected.GET("/stats/summary", statsHandler.Summary)
	protected.GET("/stats/monthly", statsHandler.Monthly)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin(cfg.Auth.AdminLogin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	return r
}
