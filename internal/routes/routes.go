package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/shopwice/internal/config"
	"github.com/example/shopwice/internal/handlers"
	"github.com/example/shopwice/internal/middleware"
	"github.com/example/shopwice/internal/services"
)

// Register wires up all HTTP routes. Reads are public; writes on catalog
// resources and the profile routes require a valid access token.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	notifier := services.NewGatewayNotifier(cfg.SMSGatewayURL, cfg.SMSGatewayAPIKey)
	authService := services.NewAuthService(db, cfg, notifier)
	catalogService := services.NewCatalogService(db)
	productService := services.NewProductService(db, catalogService)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	resetHandler := handlers.NewPasswordResetHandler(authService)
	profileHandler := handlers.NewProfileHandler(db, authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, productService)
	productHandler := handlers.NewProductHandler(productService)

	api := app.Group("/api/v1")
	api.Get("/health", handlers.HealthCheck)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/password-reset/request", resetHandler.Request)
	auth.Post("/password-reset/confirm", resetHandler.Confirm)

	requireAuth := middleware.AuthMiddleware(cfg)

	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/roots", catalogHandler.Roots)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Get("/:id/products", catalogHandler.CategoryProducts)
	categories.Post("/", requireAuth, catalogHandler.CreateCategory)
	categories.Put("/:id", requireAuth, catalogHandler.UpdateCategory)
	categories.Delete("/:id", requireAuth, catalogHandler.DeleteCategory)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/search", productHandler.Search)
	products.Get("/featured", productHandler.Featured)
	products.Get("/:id", productHandler.GetProduct)
	products.Get("/:id/recommendations", productHandler.Recommendations)
	products.Post("/", requireAuth, productHandler.CreateProduct)
	products.Put("/:id", requireAuth, productHandler.UpdateProduct)
	products.Delete("/:id", requireAuth, productHandler.DeleteProduct)

	profile := api.Group("/profile", requireAuth)
	profile.Get("/", profileHandler.GetProfile)
	profile.Put("/", profileHandler.UpdateProfile)
}
