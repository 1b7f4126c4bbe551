package router

import (
	"net/http"

	"github.com/VYR4L/backend-expense-tracker/internal/config"
	"github.com/VYR4L/backend-expense-tracker/internal/handler"
	"github.com/VYR4L/backend-expense-tracker/internal/middleware"
	"github.com/VYR4L/backend-expense-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Setup wires services, handlers and middleware into a Gin engine.
func Setup(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	balanceSvc := service.NewBalanceService(db, log)
	transactionSvc := service.NewTransactionService(db, log, balanceSvc)
	categorySvc := service.NewCategoryService(db, log)
	goalSvc := service.NewGoalService(db, log)
	userSvc := service.NewUserService(db, log, cfg.Security.BcryptCost)
	authSvc := service.NewAuthService(db, log, cfg.JWT)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	transactionHandler := handler.NewTransactionHandler(transactionSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)
	balanceHandler := handler.NewBalanceHandler(balanceSvc)
	exportHandler := handler.NewExportHandler(transactionSvc)

	// liveness
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Expense Tracker API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// operational endpoints, admin token only
	admin := r.Group("", middleware.RequireAdminToken(cfg.Security.AdminToken))
	admin.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	admin.GET("/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"address":          cfg.Server.Address,
			"port":             cfg.Server.Port,
			"mode":             cfg.Server.Mode,
			"log_level":        cfg.Log.Level,
			"jwt_expire_hours": cfg.JWT.ExpireHours,
		})
	})

	// no auth: registration and login
	r.POST("/users", userHandler.Create)
	r.POST("/auth/login", authHandler.Login)

	authed := r.Group("", middleware.Authenticate(cfg.JWT.Secret, db))

	authed.GET("/auth/me", authHandler.Me)
	authed.PUT("/users/:id", userHandler.Update)
	authed.DELETE("/users/:id", userHandler.Delete)

	authed.POST("/categories", categoryHandler.Create)
	authed.GET("/categories", categoryHandler.List)
	authed.GET("/categories/:id", categoryHandler.Get)
	authed.PUT("/categories/:id", categoryHandler.Update)
	authed.DELETE("/categories/:id", categoryHandler.Delete)

	authed.POST("/transactions", transactionHandler.Create)
	authed.GET("/transactions", transactionHandler.List)
	authed.GET("/transactions/export/csv", exportHandler.ExportCSV)
	authed.GET("/transactions/export/xlsx", exportHandler.ExportXLSX)
	authed.GET("/transactions/:id", transactionHandler.Get)
	authed.PUT("/transactions/:id", transactionHandler.Update)
	authed.DELETE("/transactions/:id", transactionHandler.Delete)

	authed.GET("/balances/:user_id", balanceHandler.Get)

	authed.POST("/goals", goalHandler.Create)
	authed.GET("/goals/user/:user_id", goalHandler.ListForUser)
	authed.GET("/goals/:id", goalHandler.Get)
	authed.PUT("/goals/:id", goalHandler.Update)
	authed.DELETE("/goals/:id", goalHandler.Delete)
	authed.PATCH("/goals/:id/add-amount", goalHandler.AddAmount)

	return r
}
