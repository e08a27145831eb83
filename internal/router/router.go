package router

import (
	"time"

	"expense-ledger/internal/config"
	"expense-ledger/internal/handler"
	"expense-ledger/internal/middleware"
	"expense-ledger/internal/repository"
	"expense-ledger/internal/service"
	"expense-ledger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupRouter wires services onto a gin engine. The store handle is passed in;
// nothing here keeps process-wide state.
func SetupRouter(cfg *config.Config, db *gorm.DB, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	repo := repository.New(db)
	tokens := util.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	creds := util.NewCredentialStore(cfg.Security.BcryptCost)

	users := service.NewUserService(repo, creds, tokens)
	categories := service.NewCategoryService(repo)
	expenses := service.NewExpenseService(repo)

	var checker middleware.UserChecker
	if cfg.JWT.CheckUser {
		checker = users
	}
	auth := middleware.AuthGate(tokens, checker)

	r.GET("/healthz", handler.Health(repo))

	v1 := r.Group("/v1")

	authHandler := handler.NewAuthHandler(users)
	userHandler := handler.NewUserHandler(users)
	v1.POST("/users", authHandler.Register)
	v1.POST("/users/login", authHandler.Login)
	v1.GET("/users/:id", auth, userHandler.GetUser)
	v1.PUT("/users/:id", auth, userHandler.UpdateUser)
	v1.DELETE("/users/:id", auth, userHandler.DeleteUser)

	// everything below requires a bearer token
	protected := v1.Group("")
	protected.Use(auth)

	categoryHandler := handler.NewCategoryHandler(categories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.GET("/categories/:id", categoryHandler.GetCategory)

	expenseHandler := handler.NewExpenseHandler(expenses)
	protected.POST("/expenses", expenseHandler.CreateExpense)
	protected.GET("/expenses", expenseHandler.ListExpenses)
	protected.GET("/expenses/summary", expenseHandler.Summary)
	protected.GET("/expenses/export", expenseHandler.Export)
	protected.GET("/expenses/:id", expenseHandler.GetExpense)
	protected.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	protected.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	return r
}
