package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pantrymatch/backend/internal/domain"
)

// ShoppingListRepository persists shopping entries under "shopping:{owner}:{id}"
type ShoppingListRepository struct {
	store *Store
}

// NewShoppingListRepository creates a shopping-list repository on store
func NewShoppingListRepository(store *Store) *ShoppingListRepository {
	return &ShoppingListRepository{store: store}
}

func shoppingPrefix(ownerID string) string {
	return fmt.Sprintf("shopping:%s:", ownerID)
}

// ListEntries returns the owner's list, oldest entry first
func (r *ShoppingListRepository) ListEntries(ctx context.Context, ownerID string) ([]domain.ShoppingListEntry, error) {
	entries := []domain.ShoppingListEntry{}
	err := r.store.Each(shoppingPrefix(ownerID), func(key string, data []byte) error {
		var entry domain.ShoppingListEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping entries: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

// AddEntries inserts entries whose name is not already on the list.
// Names are compared lower-cased and trimmed.
func (r *ShoppingListRepository) AddEntries(ctx context.Context, ownerID string, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error) {
	existing, err := r.ListEntries(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	onList := make(map[string]bool, len(existing))
	for _, entry := range existing {
		onList[strings.ToLower(strings.TrimSpace(entry.Name))] = true
	}

	inserted := []domain.ShoppingListEntry{}
	now := time.Now()
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.Name))
		if key == "" || onList[key] {
			continue
		}
		onList[key] = true

		entry.ID = uuid.NewString()
		entry.OwnerID = ownerID
		if entry.CreatedAt.IsZero() {
			// Distinct timestamps keep a batch in insertion order.
			entry.CreatedAt = now.Add(time.Duration(len(inserted)))
		}
		if err := r.store.Set(shoppingPrefix(ownerID)+entry.ID, entry); err != nil {
			return inserted, fmt.Errorf("failed to save shopping entry: %w", err)
		}
		inserted = append(inserted, entry)
	}

	return inserted, nil
}

// DeleteEntry removes one entry
func (r *ShoppingListRepository) DeleteEntry(ctx context.Context, ownerID, id string) error {
	return r.store.Delete(shoppingPrefix(ownerID) + id)
}
