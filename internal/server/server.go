package server

import (
	"net/http"
	"strings"
	"time"

	"anoa.com/marketplace/internal/config"
	"anoa.com/marketplace/internal/entity"
	"anoa.com/marketplace/internal/middleware"
	"anoa.com/marketplace/internal/token"
	"anoa.com/marketplace/pkg/cache"
	"anoa.com/marketplace/pkg/events"
	"anoa.com/marketplace/pkg/ratelimiter"
	"anoa.com/marketplace/pkg/storage"

	adminHttp "anoa.com/marketplace/internal/modules/admin/delivery/http"
	adminService "anoa.com/marketplace/internal/modules/admin/service"

	cartHttp "anoa.com/marketplace/internal/modules/cart/delivery/http"
	cartRepo "anoa.com/marketplace/internal/modules/cart/repository"
	cartService "anoa.com/marketplace/internal/modules/cart/service"

	categoryHttp "anoa.com/marketplace/internal/modules/category/delivery/http"
	categoryRepo "anoa.com/marketplace/internal/modules/category/repository"
	categoryService "anoa.com/marketplace/internal/modules/category/service"

	complaintHttp "anoa.com/marketplace/internal/modules/complaint/delivery/http"
	complaintRepo "anoa.com/marketplace/internal/modules/complaint/repository"
	complaintService "anoa.com/marketplace/internal/modules/complaint/service"

	orderHttp "anoa.com/marketplace/internal/modules/order/delivery/http"
	orderRepo "anoa.com/marketplace/internal/modules/order/repository"
	orderService "anoa.com/marketplace/internal/modules/order/service"

	productHttp "anoa.com/marketplace/internal/modules/product/delivery/http"
	productRepo "anoa.com/marketplace/internal/modules/product/repository"
	productService "anoa.com/marketplace/internal/modules/product/service"

	profileHttp "anoa.com/marketplace/internal/modules/profile/delivery/http"
	profileService "anoa.com/marketplace/internal/modules/profile/service"

	reviewHttp "anoa.com/marketplace/internal/modules/review/delivery/http"
	reviewRepo "anoa.com/marketplace/internal/modules/review/repository"
	reviewService "anoa.com/marketplace/internal/modules/review/service"

	statHttp "anoa.com/marketplace/internal/modules/stat/delivery/http"
	statRepo "anoa.com/marketplace/internal/modules/stat/repository"
	statService "anoa.com/marketplace/internal/modules/stat/service"

	userHttp "anoa.com/marketplace/internal/modules/user/delivery/http"
	userRepo "anoa.com/marketplace/internal/modules/user/repository"
	userService "anoa.com/marketplace/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide resources built in main.
type Deps struct {
	DB           *gorm.DB
	Redis        *redis.Client
	ImageStorage storage.ImageStorage
	Publisher    events.Publisher
	Logger       *zap.Logger
}

type Server struct {
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	db := deps.DB
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	productAssets := storage.NewAssetStore(deps.ImageStorage, cfg.CloudinaryUploadFolder+"/products", cfg.UploadConcurrency, logger)
	profileAssets := storage.NewAssetStore(deps.ImageStorage, cfg.CloudinaryUploadFolder+"/profiles", cfg.UploadConcurrency, logger)

	userRepo := userRepo.NewUserRepository(db)
	productRepo := productRepo.NewProductRepository(db)
	cartRepo := cartRepo.NewCartRepository(db)
	orderRepo := orderRepo.NewOrderRepository(db)
	reviewRepo := reviewRepo.NewReviewRepository(db)
	complaintRepo := complaintRepo.NewComplaintRepository(db)

	authSvc := userService.NewAuthService(userRepo, profileAssets, issuer)
	authHandler := userHttp.NewAuthHandler(authSvc, userHttp.CookieConfig{
		Name:   cfg.SessionCookie,
		TTL:    cfg.JWTTTL,
		Secure: cfg.IsProduction(),
	})

	profileSvc := profileService.NewProfileService(userRepo, profileAssets)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	productSvc := productService.NewProductService(db, productRepo, cartRepo, reviewRepo, productAssets)
	productHandler := productHttp.NewProductHandler(productSvc)

	categorySvc := categoryService.NewCategoryService(categoryRepo.NewCategoryRepository(db))
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	cartSvc := cartService.NewCartService(cartRepo, productRepo, cfg.CartMergeLines)
	cartHandler := cartHttp.NewCartHandler(cartSvc)

	orderSvc := orderService.NewOrderService(orderService.Deps{
		DB:        db,
		Orders:    orderRepo,
		Cart:      cartRepo,
		Products:  productRepo,
		Users:     userRepo,
		Locker:    cache.NewLocker(deps.Redis),
		LockTTL:   cfg.CheckoutLockTTL,
		Publisher: deps.Publisher,
		Logger:    logger,
	})
	orderHandler := orderHttp.NewOrderHandler(orderSvc)

	reviewSvc := reviewService.NewReviewService(reviewRepo, ratelimiter.New(deps.Redis), cfg.ReviewCooldown, logger)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	complaintSvc := complaintService.NewComplaintService(complaintRepo)
	complaintHandler := complaintHttp.NewComplaintHandler(complaintSvc)

	statSvc := statService.NewStatService(statRepo.NewStatRepository(db))
	statHandler := statHttp.NewStatHandler(statSvc)

	adminSvc := adminService.NewAdminService(db, userRepo, cartRepo, productRepo, reviewRepo, profileAssets)
	adminHandler := adminHttp.NewAdminHandler(adminSvc, orderSvc, complaintSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(userRepo, issuer, cfg.SessionCookie, cfg.TokenQueryParam)

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes (no auth required)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/seller/sellersignup", authHandler.SellerSignup)

	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:category", productHandler.ListByCategory)
	api.GET("/product/:id", productHandler.GetProduct)
	api.GET("/newarrivals", productHandler.NewArrivals)
	api.GET("/bestsellers", productHandler.BestSellers)
	api.GET("/categories", categoryHandler.GetAllCategories)
	api.GET("/reviews/:productId", reviewHandler.ListReviews)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/reviews", reviewHandler.CreateReview)

		protected.POST("/cart/add", cartHandler.AddLine)
		protected.GET("/cart", cartHandler.ListLines)
		protected.DELETE("/cart/:id", cartHandler.RemoveLine)
		protected.POST("/cart/checkout", orderHandler.Checkout)

		protected.GET("/orders", orderHandler.ListMine)
		protected.POST("/orders/purchase", orderHandler.Purchase)

		protected.POST("/complaints", complaintHandler.Create)
		protected.GET("/complaints", complaintHandler.ListMine)

		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		sellerGroup := protected.Group("/seller")
		sellerGroup.Use(authMiddleware.RequireRole(entity.RoleSeller))
		{
			sellerGroup.POST("/submitproduct", productHandler.SubmitProduct)
			sellerGroup.DELETE("/deleteproduct/:id", productHandler.DeleteProduct)
			sellerGroup.GET("/products", productHandler.ListMine)
			sellerGroup.GET("/dashboard", profileHandler.GetCurrentProfile)
			sellerGroup.GET("/orders", orderHandler.ListReceived)
			sellerGroup.GET("/stats", statHandler.GetSellerStats)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/stats", statHandler.GetMarketplaceStats)
			adminGroup.GET("/users", adminHandler.GetAllUsers)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.DELETE("/orders/:id", adminHandler.DeleteOrder)
			adminGroup.GET("/complaints", adminHandler.ListComplaints)
			adminGroup.POST("/complaints/:id/reply", adminHandler.ReplyComplaint)
		}
	}

	return &Server{
		engine: router,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	s.logger.Info("server listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
