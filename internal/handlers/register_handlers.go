package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"

	"github.com/insighthub/commerce-ledger/internal/core/domain"
	portssvc "github.com/insighthub/commerce-ledger/internal/core/ports/services"
	"github.com/insighthub/commerce-ledger/internal/middleware"
	"github.com/insighthub/commerce-ledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	registerCustomValidators()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, limiterInstance)
}

// registerCustomValidators hooks domain-aware validators into the gin binding
// engine.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("accountrole", func(fl validator.FieldLevel) bool {
		return domain.AccountRole(fl.Field().String()).Valid()
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	// Apply AuthMiddleware and rate limiting to the entire v1 group
	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance), middleware.AuthMiddleware(cfg.JWTSecret))

	registerReconcileRoutes(v1, services.Reconciler)
	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Posting)
	registerStockRoutes(v1, services.Stock)
}

func registerReconcileRoutes(v1 *gin.RouterGroup, reconcilerService portssvc.ReconcilerSvcFacade) {
	h := newReconcileHandler(reconcilerService)

	reconcile := v1.Group("/reconcile")
	{
		reconcile.POST("/sales", h.reconcileSale)
		reconcile.POST("/purchases", h.reconcilePurchase)
		reconcile.POST("/expenses", h.reconcileExpense)
		reconcile.POST("/returns", h.reconcileReturn)
	}
}

func registerAccountRoutes(v1 *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	businesses := v1.Group("/businesses/:businessID")
	{
		businesses.POST("/accounts", h.createAccount)
		businesses.GET("/accounts", h.listAccounts)
		businesses.PUT("/account-roles", h.upsertRoleMapping)
	}
	v1.GET("/accounts/:accountID", h.getAccount)
}

func registerJournalRoutes(v1 *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	v1.GET("/journals/:journalEntryID", h.getJournalEntry)
	v1.GET("/businesses/:businessID/journals", h.listJournalEntries)
}

func registerStockRoutes(v1 *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	products := v1.Group("/products/:productID")
	{
		products.GET("", h.getProduct)
		products.GET("/movements", h.listMovements)
	}
}
