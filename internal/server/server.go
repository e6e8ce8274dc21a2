package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/config"
	"gymdesk/internal/gym"
	"gymdesk/internal/internalsale"
	"gymdesk/internal/inventory"
	"gymdesk/internal/invoice"
	"gymdesk/internal/notify"
	"gymdesk/internal/purchase"
	"gymdesk/internal/report"
	"gymdesk/internal/subscription"
	"gymdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, notifier notify.Notifier) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RequireJSONMiddleware(),
	)

	subscriptionService := subscription.NewService(subscription.NewRepository(db), notifier)

	userHandler := user.NewHandler(user.NewService(user.NewRepository(db), cfg.JWTSecret))
	gymHandler := gym.NewHandler(gym.NewService(gym.NewRepository(db)))
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	inventoryHandler := inventory.NewHandler(inventory.NewService(inventory.NewRepository(db)))
	invoiceHandler := invoice.NewHandler(invoice.NewService(invoice.NewRepository(db), notifier))
	purchaseHandler := purchase.NewHandler(purchase.NewService(purchase.NewRepository(db)))
	internalSaleHandler := internalsale.NewHandler(internalsale.NewService(internalsale.NewRepository(db), notifier))
	reportHandler := report.NewHandler(report.NewService(report.NewRepository(db), subscriptionService))

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(cfg.LoginRatePerSec, cfg.LoginBurst))
	{
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/gyms", gymHandler.ListGyms)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)

		protected.GET("/subscription-types", subscriptionHandler.ListTypes)
		protected.POST("/subscription-types", subscriptionHandler.CreateType)
		protected.GET("/subscription-types/:typeID", subscriptionHandler.GetType)
		protected.PUT("/subscription-types/:typeID", subscriptionHandler.UpdateType)
		protected.PATCH("/subscription-types/:typeID/active", subscriptionHandler.SetTypeActive)
		protected.DELETE("/subscription-types/:typeID", subscriptionHandler.DeleteType)

		protected.GET("/subscribers", subscriptionHandler.ListSubscribers)
		protected.POST("/subscribers", subscriptionHandler.CreateSubscriber)
		protected.GET("/subscribers/:subscriberID", subscriptionHandler.GetSubscriber)
		protected.PUT("/subscribers/:subscriberID", subscriptionHandler.UpdateSubscriber)
		protected.DELETE("/subscribers/:subscriberID", subscriptionHandler.DeleteSubscriber)
		protected.POST("/subscribers/:subscriberID/use-session", subscriptionHandler.UseSession)
		protected.POST("/subscribers/:subscriberID/renew", subscriptionHandler.Renew)
		protected.POST("/subscription-statuses/refresh", subscriptionHandler.RefreshStatuses)

		protected.GET("/categories", inventoryHandler.ListCategories)
		protected.POST("/categories", inventoryHandler.CreateCategory)
		protected.GET("/categories/:categoryID", inventoryHandler.GetCategory)
		protected.PUT("/categories/:categoryID", inventoryHandler.UpdateCategory)
		protected.DELETE("/categories/:categoryID", inventoryHandler.DeleteCategory)

		protected.GET("/products", inventoryHandler.ListProducts)
		protected.POST("/products", inventoryHandler.CreateProduct)
		protected.GET("/products/:productID", inventoryHandler.GetProduct)
		protected.PUT("/products/:productID", inventoryHandler.UpdateProduct)
		protected.DELETE("/products/:productID", inventoryHandler.DeleteProduct)
		protected.GET("/products/:productID/label", inventoryHandler.ProductLabel)
		protected.GET("/barcodes/:barcode", inventoryHandler.GetProductByBarcode)
		protected.GET("/inventory/low-stock", inventoryHandler.ListLowStock)

		protected.GET("/invoices", invoiceHandler.ListInvoices)
		protected.POST("/invoices", invoiceHandler.CreateInvoice)
		protected.GET("/invoices/:invoiceID", invoiceHandler.GetInvoice)

		protected.GET("/purchases", purchaseHandler.ListPurchases)
		protected.POST("/purchases", purchaseHandler.CreatePurchase)
		protected.GET("/purchases/:purchaseID", purchaseHandler.GetPurchase)

		protected.GET("/internal-sales", internalSaleHandler.ListInternalSales)
		protected.POST("/internal-sales", internalSaleHandler.CreateInternalSale)

		protected.GET("/reports/dashboard", reportHandler.Dashboard)
	}

	adminMiddleware := auth.RequireRole(user.RoleAdmin)
	admin := router.Group("/")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.PUT("/gyms/:gymID", gymHandler.UpdateGym)

		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/users", userHandler.CreateUser)
		admin.GET("/users/:userID", userHandler.GetUser)
		admin.PUT("/users/:userID", userHandler.UpdateUser)
		admin.PATCH("/users/:userID/active", userHandler.SetActive)
		admin.DELETE("/users/:userID", userHandler.DeleteUser)
	}

	router.GET("/health", Health(db, notifier))
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the listener fails or Shutdown is called; the latter
// returns http.ErrServerClosed.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// corsMiddleware admits the desktop shell's webview; the API only listens on
// the bind address from config.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
