// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-admin/internal/config"
	"github.com/javajoker/catalog-admin/internal/handlers"
	"github.com/javajoker/catalog-admin/internal/middleware"
	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/repository"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// Services is everything the HTTP layer and the order listener share.
type Services struct {
	Hub        *realtime.Hub
	Auth       *services.AuthService
	Products   *services.ProductService
	Taxonomy   *services.TaxonomyService
	Orders     *services.OrderService
	Dashboard  *services.DashboardService
	Storage    *services.StorageService
	Workspaces *services.WorkspaceService
}

func NewServices(repos *repository.Repositories, storage *services.StorageService, cfg *config.Config) *Services {
	hub := realtime.NewHub(64)

	s := &Services{
		Hub:        hub,
		Auth:       services.NewAuthService(repos.Users, cfg),
		Products:   services.NewProductService(repos.Products, hub),
		Taxonomy:   services.NewTaxonomyService(repos.Taxonomy, hub),
		Orders:     services.NewOrderService(repos.Orders, hub),
		Storage:    storage,
		Workspaces: services.NewWorkspaceService(storage),
	}
	s.Dashboard = services.NewDashboardService(s.Products, s.Taxonomy, s.Orders)
	return s
}

func Initialize(svc *Services, cfg *config.Config) *gin.Engine {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth)
	productHandler := handlers.NewProductHandler(svc.Products)
	formHandler := handlers.NewFormHandler(svc.Workspaces, svc.Products, svc.Taxonomy)
	uploadHandler := handlers.NewUploadHandler(svc.Workspaces, svc.Storage)
	taxonomyHandler := handlers.NewTaxonomyHandler(svc.Taxonomy)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, svc.Hub)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(nil))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	if svc.Storage != nil && svc.Storage.Backend() == "local" {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			auth.GET("/session", authHandler.Session)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(cfg.Admin.Email))
		{
			admin.GET("/dashboard", dashboardHandler.GetDashboard)
			admin.GET("/dashboard/stream", dashboardHandler.Stream)

			products := admin.Group("/products")
			{
				products.GET("", productHandler.GetProducts)
				products.GET("/slug", productHandler.PreviewSlug)
				products.GET("/:id", productHandler.GetProduct)
				products.POST("", productHandler.CreateProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			form := admin.Group("/form")
			{
				form.GET("", formHandler.GetForm)
				form.POST("/new", formHandler.OpenCreate)
				form.POST("/edit/:id", formHandler.OpenEdit)
				form.PATCH("", formHandler.UpdateForm)
				form.POST("/submit", formHandler.Submit)
				form.POST("/cancel", formHandler.Cancel)
			}

			uploads := admin.Group("/uploads")
			{
				uploads.POST("", middleware.UploadRateLimit(), uploadHandler.UploadImage)
				uploads.GET("/progress", uploadHandler.StreamProgress)
			}

			for _, kind := range []models.TaxonomyKind{models.TaxonomyCategories, models.TaxonomyStyles} {
				taxa := admin.Group("/" + string(kind))
				taxa.GET("", taxonomyHandler.List(kind))
				taxa.POST("", taxonomyHandler.Create(kind))
				taxa.DELETE("/:id", taxonomyHandler.Delete(kind))
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", orderHandler.GetOrders)
				orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}
		}
	}

	return r
}
