package http

import (
	"github.com/gin-gonic/gin"
	"github.com/pantrymatch/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/measure/parse", handler.ParseMeasure)

		owned := v1.Group("", OwnerMiddleware())

		inventory := owned.Group("/inventory")
		{
			inventory.GET("", handler.GetInventory)
			inventory.POST("", handler.AddInventoryItem)
			inventory.POST("/adjust", handler.AdjustInventory)
			inventory.DELETE("/items/:id", handler.DeleteInventoryItem)
		}

		recipes := owned.Group("/recipes")
		{
			recipes.GET("/suggestions", handler.SuggestRecipes)
			recipes.POST("/import", handler.ImportRecipe)
			recipes.GET("/:id/availability", handler.RecipeAvailability)
			recipes.POST("/:id/shopping-list", handler.AddMissingToShoppingList)
		}

		shopping := owned.Group("/shopping-list")
		{
			shopping.GET("", handler.GetShoppingList)
			shopping.DELETE("/:id", handler.DeleteShoppingEntry)
		}
	}

	return router
}
