package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pantrymatch/backend/internal/domain"
)

// StaleAfter is the age of the oldest purchase at which an entry is stale
const StaleAfter = 7 * 24 * time.Hour

// Consolidate groups raw purchase rows by canonical name.
// Entries come back in the order their key was first seen.
func Consolidate(items []domain.InventoryItem) []domain.ConsolidatedEntry {
	index := make(map[string]int)
	var entries []domain.ConsolidatedEntry

	for _, item := range items {
		key := Normalize(item.Name)
		if key == "" {
			continue
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(entries)
			entries = append(entries, NewConsolidatedEntry(item))
			continue
		}
		entries[i] = MergePurchase(entries[i], item)
	}

	return entries
}

// NewConsolidatedEntry seeds an entry from the first purchase seen under a key.
// That purchase becomes the primary record.
func NewConsolidatedEntry(item domain.InventoryItem) domain.ConsolidatedEntry {
	entry := domain.ConsolidatedEntry{
		Name:            Normalize(item.Name),
		DisplayName:     strings.TrimSpace(item.Name),
		Category:        item.Category,
		Unit:            item.Unit,
		Brand:           item.Brand,
		Nutrition:       item.Nutrition,
		TotalAmount:     item.Amount,
		TotalSpent:      priceOf(item),
		OldestDate:      item.CreatedAt,
		NewestDate:      item.CreatedAt,
		PrimaryID:       item.ID,
		PurchaseHistory: []domain.PurchaseRecord{purchaseRecord(item)},
	}
	return entry
}

// MergePurchase folds a later duplicate into an existing entry.
// Display fields (category, unit, brand, nutrition) keep the first-seen values;
// amount, spend, date range and history always accumulate.
func MergePurchase(existing domain.ConsolidatedEntry, incoming domain.InventoryItem) domain.ConsolidatedEntry {
	merged := existing
	merged.TotalAmount += incoming.Amount
	merged.TotalSpent = existing.TotalSpent.Add(priceOf(incoming))

	if incoming.CreatedAt.Before(merged.OldestDate) {
		merged.OldestDate = incoming.CreatedAt
	}
	if incoming.CreatedAt.After(merged.NewestDate) {
		merged.NewestDate = incoming.CreatedAt
	}

	history := make([]domain.PurchaseRecord, 0, len(existing.PurchaseHistory)+1)
	history = append(history, existing.PurchaseHistory...)
	history = append(history, purchaseRecord(incoming))
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	merged.PurchaseHistory = history

	return merged
}

func purchaseRecord(item domain.InventoryItem) domain.PurchaseRecord {
	return domain.PurchaseRecord{
		ID:     item.ID,
		Amount: item.Amount,
		Date:   item.CreatedAt,
		Price:  item.Price,
	}
}

func priceOf(item domain.InventoryItem) decimal.Decimal {
	if item.Price == nil {
		return decimal.Zero
	}
	return *item.Price
}

// IsStale reports whether the oldest purchase is at least StaleAfter old at now
func IsStale(entry domain.ConsolidatedEntry, now time.Time) bool {
	return now.Sub(entry.OldestDate) >= StaleAfter
}

// PrimaryRecord returns the purchase record that quick adjustments target
func PrimaryRecord(entry domain.ConsolidatedEntry) (domain.PurchaseRecord, bool) {
	for _, record := range entry.PurchaseHistory {
		if record.ID == entry.PrimaryID {
			return record, true
		}
	}
	return domain.PurchaseRecord{}, false
}

// GroupByCategory buckets entries by category, newest purchase first within each bucket
func GroupByCategory(entries []domain.ConsolidatedEntry) map[string][]domain.ConsolidatedEntry {
	groups := make(map[string][]domain.ConsolidatedEntry)
	for _, entry := range entries {
		groups[entry.Category] = append(groups[entry.Category], entry)
	}

	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].NewestDate.After(group[j].NewestDate)
		})
	}

	return groups
}

// FindEntry returns the consolidated entry for a name, if any
func FindEntry(entries []domain.ConsolidatedEntry, name string) (domain.ConsolidatedEntry, bool) {
	key := Normalize(name)
	for _, entry := range entries {
		if entry.Name == key {
			return entry, true
		}
	}
	return domain.ConsolidatedEntry{}, false
}

// EntryNames lists entries as the user spelled them.
// Matching normalizes on its own, so these are also what availability reports.
func EntryNames(entries []domain.ConsolidatedEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.DisplayName
		if name == "" {
			name = entry.Name
		}
		names = append(names, name)
	}
	return names
}
