package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RecipeProvider defines the interface for the external recipe catalog
type RecipeProvider interface {
	SearchByIngredient(ctx context.Context, keyword string) ([]RecipeSummary, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
	LookupRecipe(ctx context.Context, id string) (*Recipe, error)
}

// InventoryRepository persists raw purchase rows per owner.
// ListItems returns rows ordered by CreatedAt ascending.
type InventoryRepository interface {
	ListItems(ctx context.Context, ownerID string) ([]InventoryItem, error)
	GetItem(ctx context.Context, ownerID, id string) (*InventoryItem, error)
	SaveItem(ctx context.Context, item *InventoryItem) error
	DeleteItem(ctx context.Context, ownerID, id string) error
}

// ShoppingListRepository persists shopping-list entries per owner.
// AddEntries skips entries whose normalized name is already on the list
// and returns the entries actually inserted.
type ShoppingListRepository interface {
	ListEntries(ctx context.Context, ownerID string) ([]ShoppingListEntry, error)
	AddEntries(ctx context.Context, ownerID string, entries []ShoppingListEntry) ([]ShoppingListEntry, error)
	DeleteEntry(ctx context.Context, ownerID, id string) error
}
