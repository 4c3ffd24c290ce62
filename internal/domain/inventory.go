package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nutrients contains per-serving macronutrients
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fat      float64 `json:"fat"`     // grams
}

// InventoryItem is one purchase event as persisted by storage.
// Only Amount changes after creation.
type InventoryItem struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"ownerId"`
	Name      string           `json:"name"`
	Amount    float64          `json:"amount"`
	Unit      string           `json:"unit"`
	Category  string           `json:"category"`
	Brand     string           `json:"brand,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Nutrition *Nutrients       `json:"nutrition,omitempty"`
}

// PurchaseRecord references a single InventoryItem inside a ConsolidatedEntry
type PurchaseRecord struct {
	ID     string           `json:"id"`
	Amount float64          `json:"amount"`
	Date   time.Time        `json:"date"`
	Price  *decimal.Decimal `json:"price,omitempty"`
}

// ConsolidatedEntry is the merged view of every purchase sharing a canonical key.
// It is rebuilt on every load and never persisted.
type ConsolidatedEntry struct {
	Name            string           `json:"name"`        // canonical key
	DisplayName     string           `json:"displayName"` // first-seen spelling
	Category        string           `json:"category"`
	Unit            string           `json:"unit"`
	Brand           string           `json:"brand,omitempty"`
	Nutrition       *Nutrients       `json:"nutrition,omitempty"`
	TotalAmount     float64          `json:"totalAmount"`
	TotalSpent      decimal.Decimal  `json:"totalSpent"`
	OldestDate      time.Time        `json:"oldestDate"`
	NewestDate      time.Time        `json:"newestDate"`
	PrimaryID       string           `json:"primaryId"`
	PurchaseHistory []PurchaseRecord `json:"purchaseHistory"` // newest first
	Stale           bool             `json:"stale"`
}

// AddInventoryRequest is the body for recording a new purchase
type AddInventoryRequest struct {
	Name      string           `json:"name" binding:"required"`
	Amount    float64          `json:"amount"`
	Unit      string           `json:"unit,omitempty"`
	Category  string           `json:"category,omitempty"`
	Brand     string           `json:"brand,omitempty"`
	CreatedAt *time.Time       `json:"createdAt,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Nutrition *Nutrients       `json:"nutrition,omitempty"`
}

// AdjustInventoryRequest is the body for the quick +/- control
type AdjustInventoryRequest struct {
	Name  string  `json:"name" binding:"required"`
	Delta float64 `json:"delta"`
}

// ShoppingListEntry is one line on an owner's shopping list
type ShoppingListEntry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Unit      string    `json:"unit"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}
