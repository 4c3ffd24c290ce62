package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrymatch/backend/internal/domain"
	"github.com/pantrymatch/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	inventory *usecase.InventoryService
	recipes   *usecase.RecipeService
	shopping  *usecase.ShoppingService
}

// NewHandler creates a new HTTP handler
func NewHandler(inventory *usecase.InventoryService, recipes *usecase.RecipeService, shopping *usecase.ShoppingService) *Handler {
	return &Handler{
		inventory: inventory,
		recipes:   recipes,
		shopping:  shopping,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pantrymatch-backend",
		"version": "1.0.0",
	})
}

// GetInventory returns the consolidated inventory grouped by category
func (h *Handler) GetInventory(c *gin.Context) {
	groups, err := h.inventory.Grouped(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": groups})
}

// AddInventoryItem records a purchase
func (h *Handler) AddInventoryItem(c *gin.Context) {
	var request domain.AddInventoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.inventory.Add(c.Request.Context(), ownerID(c), &request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// AdjustInventory applies the quick +/- control to an entry's primary purchase
func (h *Handler) AdjustInventory(c *gin.Context) {
	var request domain.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.inventory.Adjust(c.Request.Context(), ownerID(c), request.Name, request.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": usecase.GroupByCategory(entries)})
}

// DeleteInventoryItem removes one purchase row
func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	if err := h.inventory.Delete(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SuggestRecipes returns recipes ranked against the owner's inventory
func (h *Handler) SuggestRecipes(c *gin.Context) {
	result, err := h.recipes.Suggest(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecipeAvailability returns per-ingredient availability for one recipe
func (h *Handler) RecipeAvailability(c *gin.Context) {
	result, err := h.recipes.Availability(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportRecipe parses and scores a recipe supplied by the client
func (h *Handler) ImportRecipe(c *gin.Context) {
	var recipe domain.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if recipe.Name == "" {
		respondError(c, domain.ErrInvalidRequest)
		return
	}

	result, err := h.recipes.Evaluate(c.Request.Context(), ownerID(c), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddMissingToShoppingList adds a recipe's missing ingredients to the list
func (h *Handler) AddMissingToShoppingList(c *gin.Context) {
	added, err := h.shopping.AddMissing(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// GetShoppingList returns the owner's shopping list
func (h *Handler) GetShoppingList(c *gin.Context) {
	entries, err := h.shopping.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// DeleteShoppingEntry removes one shopping-list entry
func (h *Handler) DeleteShoppingEntry(c *gin.Context) {
	if err := h.shopping.Remove(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ParseMeasure exposes the measure parser
func (h *Handler) ParseMeasure(c *gin.Context) {
	var request domain.ParseMeasureRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usecase.ParseMeasure(request.Measure))
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrMissingOwner):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrRecipeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrProviderFailure):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
