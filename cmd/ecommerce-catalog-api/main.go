package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/ecommerce-catalog-api/internal/api/handlers"
	"github.com/example/ecommerce-catalog-api/internal/api/middleware"
	"github.com/example/ecommerce-catalog-api/internal/cache"
	"github.com/example/ecommerce-catalog-api/internal/config"
	"github.com/example/ecommerce-catalog-api/internal/health"
	"github.com/example/ecommerce-catalog-api/internal/metrics"
	repository "github.com/example/ecommerce-catalog-api/internal/repositories"
	service "github.com/example/ecommerce-catalog-api/internal/services"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := cache.NewRedisClient(&cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}

		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	cacheStore := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := cache.NewLoginRateLimiter(redisClient, &cfg.RateConfig)

	userService := service.NewUserService(repos.User, rateLimiter, &cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	categoryService := service.NewCategoryService(repos.Category, &cfg.Catalog)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productService := service.NewProductService(repos.Product, repos.ProductCategory, cacheStore, &cfg.Catalog, &cfg.Cache)
	productHandler := handlers.NewProductHandler(productService)
	assignmentService := service.NewProductCategoryService(repos.ProductCategory, repos.Product)
	assignmentHandler := handlers.NewProductCategoryHandler(assignmentService)
	imageService := service.NewProductImageService(repos.ProductImage, repos.Product)
	imageHandler := handlers.NewProductImageHandler(imageService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("POST /api/v1/categories", authMiddleware.Authenticate(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/categories/{id}", categoryHandler.GetCategory())
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", authMiddleware.Authenticate(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", authMiddleware.Authenticate(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("PATCH /api/v1/categories/{id}/activate", authMiddleware.Authenticate(categoryHandler.ActivateCategory()))
	routerMux.HandleFunc("PATCH /api/v1/categories/{id}/deactivate", authMiddleware.Authenticate(categoryHandler.DeactivateCategory()))
	routerMux.HandleFunc("POST /api/v1/categories/generate-slug", authMiddleware.Authenticate(categoryHandler.GenerateSlug()))

	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/featured", productHandler.ListFeatured())
	routerMux.HandleFunc("GET /api/v1/products/low-stock", authMiddleware.Authenticate(productHandler.ListLowStock()))
	routerMux.HandleFunc("GET /api/v1/products/out-of-stock", authMiddleware.Authenticate(productHandler.ListOutOfStock()))
	routerMux.HandleFunc("GET /api/v1/products/slug/{slug}", productHandler.GetProductBySlug())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.DeleteProduct()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/activate", authMiddleware.Authenticate(productHandler.ActivateProduct()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/deactivate", authMiddleware.Authenticate(productHandler.DeactivateProduct()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/price", authMiddleware.Authenticate(productHandler.UpdatePrice()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/stock", authMiddleware.Authenticate(productHandler.UpdateStock()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/feature", authMiddleware.Authenticate(productHandler.SetFeatured()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/unfeature", authMiddleware.Authenticate(productHandler.RemoveFeatured()))
	routerMux.HandleFunc("GET /api/v1/products/{id}/availability", productHandler.CheckAvailability())
	routerMux.HandleFunc("GET /api/v1/products/{id}/status", productHandler.GetStatus())
	routerMux.HandleFunc("GET /api/v1/categories/{categoryId}/products", productHandler.ListByCategory())

	routerMux.HandleFunc("POST /api/v1/products/{id}/categories", authMiddleware.Authenticate(assignmentHandler.AssignCategories()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}/categories", authMiddleware.Authenticate(assignmentHandler.RemoveCategories()))
	routerMux.HandleFunc("GET /api/v1/products/{id}/categories", assignmentHandler.ListProductCategories())
	routerMux.HandleFunc("GET /api/v1/products/{id}/categories/primary", assignmentHandler.GetPrimaryCategory())
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/categories/{categoryId}/order", authMiddleware.Authenticate(assignmentHandler.UpdateCategoryOrder()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/categories/{categoryId}/primary", authMiddleware.Authenticate(assignmentHandler.SetPrimaryCategory()))

	routerMux.HandleFunc("POST /api/v1/products/{id}/images", authMiddleware.Authenticate(imageHandler.AddImage()))
	routerMux.HandleFunc("GET /api/v1/products/{id}/images", imageHandler.ListImages())
	routerMux.HandleFunc("GET /api/v1/products/{id}/images/primary", imageHandler.GetPrimaryImage())
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/images/{imageId}/primary", authMiddleware.Authenticate(imageHandler.SetPrimaryImage()))
	routerMux.HandleFunc("GET /api/v1/images/{imageId}", imageHandler.GetImage())
	routerMux.HandleFunc("PUT /api/v1/images/{imageId}", authMiddleware.Authenticate(imageHandler.UpdateImage()))
	routerMux.HandleFunc("DELETE /api/v1/images/{imageId}", authMiddleware.Authenticate(imageHandler.DeleteImage()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
