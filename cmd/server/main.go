package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pantrymatch/backend/config"
	httpDelivery "github.com/pantrymatch/backend/internal/delivery/http"
	"github.com/pantrymatch/backend/internal/infrastructure/cache"
	"github.com/pantrymatch/backend/internal/infrastructure/mealdb"
	"github.com/pantrymatch/backend/internal/infrastructure/storage"
	"github.com/pantrymatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PantryMatch Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	store, err := storage.Open(storage.Options{
		Dir:      cfg.Storage.Dir,
		InMemory: cfg.Storage.InMemory,
	})
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if !cfg.Storage.InMemory && cfg.Storage.GCInterval > 0 {
		store.StartGCRoutine(cfg.Storage.GCInterval)
	}

	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Recipe cache TTL: %s", cfg.Cache.TTL)

	catalog := mealdb.NewClient(cfg.MealDB.APIKey, cfg.MealDB.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalog.SetDebug(true)
		log.Printf("Recipe catalog debug mode enabled")
	}
	log.Printf("Recipe catalog configured: %s", cfg.MealDB.BaseURL)

	// Initialize usecase layer
	inventoryService := usecase.NewInventoryService(storage.NewInventoryRepository(store))

	recipeService := usecase.NewRecipeService(
		inventoryService,
		catalog,
		memoryCache,
		usecase.RecipeServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			SearchPause:        cfg.Ranking.SearchPause,
			DetailPause:        cfg.Ranking.DetailPause,
			MaxCandidates:      cfg.Ranking.MaxCandidates,
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	shoppingService := usecase.NewShoppingService(storage.NewShoppingListRepository(store), recipeService)

	log.Printf("Ranking: search pause=%s, detail pause=%s, max candidates=%d, debug=%v",
		cfg.Ranking.SearchPause,
		cfg.Ranking.DetailPause,
		cfg.Ranking.MaxCandidates,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(inventoryService, recipeService, shoppingService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Printf("Failed to start server: %v", err)
		return
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
