package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pantrymatch/backend/internal/domain"
)

// Defaults applied to purchases recorded without a unit or category
const (
	defaultInventoryUnit     = "item"
	defaultInventoryCategory = "Other"
)

// InventoryService records purchases and serves the consolidated inventory view
type InventoryService struct {
	repo domain.InventoryRepository
	now  func() time.Time
}

// NewInventoryService creates a new inventory service backed by repo
func NewInventoryService(repo domain.InventoryRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
		now:  time.Now,
	}
}

// Add records a new purchase row
func (s *InventoryService) Add(ctx context.Context, ownerID string, request *domain.AddInventoryRequest) (*domain.InventoryItem, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	if request == nil || strings.TrimSpace(request.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if request.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidRequest)
	}

	item := &domain.InventoryItem{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(request.Name),
		Amount:    request.Amount,
		Unit:      request.Unit,
		Category:  request.Category,
		Brand:     request.Brand,
		CreatedAt: s.now(),
		Price:     request.Price,
		Nutrition: request.Nutrition,
	}
	if item.Unit == "" {
		item.Unit = defaultInventoryUnit
	} else {
		item.Unit = CanonicalUnit(item.Unit)
	}
	if item.Category == "" {
		item.Category = defaultInventoryCategory
	}
	if request.CreatedAt != nil && !request.CreatedAt.IsZero() {
		item.CreatedAt = *request.CreatedAt
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	log.Printf("[INVENTORY] Added %q (%.2f %s) for owner %s", item.Name, item.Amount, item.Unit, ownerID)
	return item, nil
}

// Consolidated loads the owner's purchases and merges them, flagging stale entries
func (s *InventoryService) Consolidated(ctx context.Context, ownerID string) ([]domain.ConsolidatedEntry, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}

	items, err := s.repo.ListItems(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	entries := Consolidate(items)
	now := s.now()
	for i := range entries {
		entries[i].Stale = IsStale(entries[i], now)
	}

	return entries, nil
}

// Grouped returns the consolidated inventory bucketed by category
func (s *InventoryService) Grouped(ctx context.Context, ownerID string) (map[string][]domain.ConsolidatedEntry, error) {
	entries, err := s.Consolidated(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(entries), nil
}

// Adjust changes the primary purchase of the named entry by delta.
// When the primary purchase would drop to zero or below it is deleted outright.
// The returned entries are recomputed from storage.
func (s *InventoryService) Adjust(ctx context.Context, ownerID, name string, delta float64) ([]domain.ConsolidatedEntry, error) {
	entries, err := s.Consolidated(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entry, ok := FindEntry(entries, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrItemNotFound, name)
	}

	primary, ok := PrimaryRecord(entry)
	if !ok {
		return nil, fmt.Errorf("%w: no primary purchase for %q", domain.ErrItemNotFound, name)
	}

	item, err := s.repo.GetItem(ctx, ownerID, primary.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load primary purchase: %w", err)
	}

	amount := item.Amount + delta
	if amount <= 0 {
		if err := s.repo.DeleteItem(ctx, ownerID, item.ID); err != nil {
			return nil, fmt.Errorf("failed to delete primary purchase: %w", err)
		}
		log.Printf("[INVENTORY] Removed primary purchase %s of %q for owner %s", item.ID, entry.Name, ownerID)
	} else {
		item.Amount = amount
		if err := s.repo.SaveItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to update primary purchase: %w", err)
		}
	}

	return s.Consolidated(ctx, ownerID)
}

// Delete removes a single purchase row
func (s *InventoryService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrMissingOwner
	}
	if id == "" {
		return domain.ErrInvalidRequest
	}
	return s.repo.DeleteItem(ctx, ownerID, id)
}
