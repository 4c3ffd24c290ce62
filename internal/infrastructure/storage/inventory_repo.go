package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pantrymatch/backend/internal/domain"
)

// InventoryRepository persists purchase rows under "inventory:{owner}:{id}"
type InventoryRepository struct {
	store *Store
}

// NewInventoryRepository creates an inventory repository on store
func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store}
}

func inventoryPrefix(ownerID string) string {
	return fmt.Sprintf("inventory:%s:", ownerID)
}

func inventoryKey(ownerID, id string) string {
	return inventoryPrefix(ownerID) + id
}

// ListItems returns the owner's rows, oldest purchase first
func (r *InventoryRepository) ListItems(ctx context.Context, ownerID string) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.store.Each(inventoryPrefix(ownerID), func(key string, data []byte) error {
		var item domain.InventoryItem
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// GetItem loads a single row
func (r *InventoryRepository) GetItem(ctx context.Context, ownerID, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.store.Get(inventoryKey(ownerID, id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem inserts or replaces a row
func (r *InventoryRepository) SaveItem(ctx context.Context, item *domain.InventoryItem) error {
	if item == nil || item.ID == "" || item.OwnerID == "" {
		return domain.ErrInvalidRequest
	}
	return r.store.Set(inventoryKey(item.OwnerID, item.ID), item)
}

// DeleteItem removes a row
func (r *InventoryRepository) DeleteItem(ctx context.Context, ownerID, id string) error {
	return r.store.Delete(inventoryKey(ownerID, id))
}
