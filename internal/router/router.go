// internal/router/router.go
package router

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopwave/ecommerce-backend/internal/cache"
	"github.com/shopwave/ecommerce-backend/internal/config"
	"github.com/shopwave/ecommerce-backend/internal/handlers"
	"github.com/shopwave/ecommerce-backend/internal/middleware"
	"github.com/shopwave/ecommerce-backend/internal/repository"
	"github.com/shopwave/ecommerce-backend/internal/services"
	"github.com/shopwave/ecommerce-backend/internal/utils"
)

const Version = "1.0.0"

// Infra carries the optional backing services built by the caller.
type Infra struct {
	ProductCache   cache.ProductCache
	Events         services.EventWriter
	GeneralLimiter *middleware.RateLimiter
	AuthLimiter    *middleware.RateLimiter
}

type Handlers struct {
	Auth    *handlers.AuthHandler
	Product *handlers.ProductHandler
	Cart    *handlers.CartHandler
	Order   *handlers.OrderHandler
	Review  *handlers.ReviewHandler
	Admin   *handlers.AdminHandler
	Feature *handlers.FeatureHandler
	Health  *handlers.HealthHandler
}

type Options struct {
	Tokens         *utils.TokenManager
	CookieName     string
	AuditLogs      repository.AuditLogRepository
	GeneralLimiter *middleware.RateLimiter
	AuthLimiter    *middleware.RateLimiter
	CORSOrigins    []string
	UploadsDir     string
}

func Initialize(db *gorm.DB, cfg *config.Config, infra Infra) (*gin.Engine, error) {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	featureRepo := repository.NewFeatureRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	gateway, err := services.NewPaymentGateway(cfg.Payment)
	if err != nil {
		return nil, fmt.Errorf("init payment gateway: %w", err)
	}

	productCache := infra.ProductCache
	if productCache == nil {
		productCache = cache.NoopProductCache{}
	}
	tokens := utils.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL, cfg.JWT.Issuer)

	// Services
	notificationService := services.NewNotificationService(infra.Events, userRepo, cfg)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, storageService, storageService.ImageUploadOptions("profiles"))
	productService := services.NewProductService(productRepo, productCache)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, gateway, notificationService, cfg.Payment.Currency)
	reviewService := services.NewReviewService(reviewRepo, orderRepo, productRepo, productCache)
	adminService := services.NewAdminService(orderRepo, userRepo, orderService)
	featureService := services.NewFeatureService(featureRepo, storageService, storageService.ImageUploadOptions("features"))

	h := Handlers{
		Auth:    handlers.NewAuthHandler(authService, userService, cfg.Cookie, int(cfg.JWT.TTL.Seconds())),
		Product: handlers.NewProductHandler(productService),
		Cart:    handlers.NewCartHandler(cartService),
		Order:   handlers.NewOrderHandler(orderService),
		Review:  handlers.NewReviewHandler(reviewService),
		Admin:   handlers.NewAdminHandler(adminService),
		Feature: handlers.NewFeatureHandler(featureService),
		Health: handlers.NewHealthHandler(Version, map[string]handlers.Pinger{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		}),
	}

	return New(h, Options{
		Tokens:         tokens,
		CookieName:     cfg.Cookie.Name,
		AuditLogs:      auditRepo,
		GeneralLimiter: infra.GeneralLimiter,
		AuthLimiter:    infra.AuthLimiter,
		CORSOrigins:    cfg.CORS.Origins,
		UploadsDir:     cfg.Server.UploadsDir,
	}), nil
}

// New mounts the route table on a fresh engine.
func New(h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.I18nMiddleware())
	if opts.GeneralLimiter != nil {
		r.Use(opts.GeneralLimiter.Middleware())
	}

	r.GET("/health", h.Health.Health)
	if opts.UploadsDir != "" {
		r.Static("/uploads", opts.UploadsDir)
	}

	authRequired := middleware.AuthRequired(opts.Tokens, opts.CookieName)

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			public := auth.Group("")
			if opts.AuthLimiter != nil {
				public.Use(opts.AuthLimiter.Middleware())
			}
			public.POST("/register", h.Auth.Register)
			public.POST("/login", h.Auth.Login)
			public.POST("/logout", h.Auth.Logout)
			public.GET("/check-auth", h.Auth.CheckAuth)

			protected := auth.Group("")
			protected.Use(authRequired)
			{
				protected.PUT("/profile", h.Auth.UpdateProfile)
				protected.POST("/profile/image", h.Auth.UploadProfileImage)
				protected.DELETE("/profile", h.Auth.DeleteAccount)
				protected.PUT("/change-password", h.Auth.ChangePassword)
			}
		}

		products := api.Group("/products")
		{
			products.GET("", h.Product.ListProducts)
			products.GET("/search/:keyword", h.Product.SearchProducts)
			products.GET("/:id", h.Product.GetProduct)
		}

		cart := api.Group("/cart")
		cart.Use(authRequired)
		{
			owner := middleware.OwnerOrAdmin("userId")
			cart.POST("/add", h.Cart.AddItem)
			cart.PUT("/update", h.Cart.UpdateQuantity)
			cart.GET("/:userId", owner, h.Cart.GetCart)
			cart.DELETE("/:userId/:productId", owner, h.Cart.RemoveItem)
			cart.DELETE("/:userId", owner, h.Cart.Clear)
		}

		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("/create", h.Order.CreateOrder)
			orders.POST("/verify-payment", h.Order.VerifyPayment)
			orders.GET("/list/:userId", middleware.OwnerOrAdmin("userId"), h.Order.ListOrders)
			orders.GET("/details/:id", h.Order.GetDetails)
			orders.PUT("/update/:orderId", h.Order.UpdateStatus)
		}

		reviews := api.Group("/reviews")
		{
			reviews.POST("/add", authRequired, h.Review.AddReview)
			reviews.GET("/:productId", h.Review.ListReviews)
		}

		admin := api.Group("/admin")
		admin.Use(authRequired)
		admin.Use(middleware.AdminRequired())
		if opts.AuditLogs != nil {
			admin.Use(middleware.AuditLogMiddleware(opts.AuditLogs))
		}
		{
			admin.GET("/dashboard/stats", h.Admin.GetDashboardStats)

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", h.Admin.ListOrders)
				adminOrders.GET("/export", h.Admin.ExportOrders)
				adminOrders.GET("/:id", h.Admin.GetOrderDetails)
				adminOrders.PUT("/:id/status", h.Admin.UpdateOrderStatus)
				adminOrders.PUT("/:id/payment", h.Admin.UpdatePaymentStatus)
			}

			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", h.Admin.ListUsers)
				adminUsers.PUT("/:userId/role", h.Admin.UpdateUserRole)
			}
		}

		feature := api.Group("/common/feature")
		{
			feature.GET("/get", h.Feature.List)
			feature.POST("/add", authRequired, middleware.AdminRequired(), h.Feature.Add)
		}
	}

	return r
}
