package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pantrymatch/backend/internal/domain"
)

// missingIngredientCategory is the list category for ingredients added from a recipe
const missingIngredientCategory = "Recipe Ingredients"

// ShoppingService turns missing recipe ingredients into shopping-list entries
type ShoppingService struct {
	repo    domain.ShoppingListRepository
	recipes *RecipeService
}

// NewShoppingService creates a new shopping service
func NewShoppingService(repo domain.ShoppingListRepository, recipes *RecipeService) *ShoppingService {
	return &ShoppingService{
		repo:    repo,
		recipes: recipes,
	}
}

// ShoppingEntries converts missing ingredients into candidate list entries.
// Quantities come from re-parsing each ingredient's measure text.
func ShoppingEntries(missing []domain.RecipeIngredient) []domain.ShoppingListEntry {
	entries := make([]domain.ShoppingListEntry, 0, len(missing))
	for _, ingredient := range missing {
		name := strings.TrimSpace(ingredient.Name)
		if name == "" {
			continue
		}
		m := ParseMeasure(ingredient.Measure)
		entries = append(entries, domain.ShoppingListEntry{
			Name:     name,
			Amount:   m.Amount,
			Unit:     m.Unit,
			Category: missingIngredientCategory,
		})
	}
	return entries
}

// AddMissing adds every ingredient of the recipe the owner lacks.
// It returns the entries actually inserted after deduplication.
func (s *ShoppingService) AddMissing(ctx context.Context, ownerID, recipeID string) ([]domain.ShoppingListEntry, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}

	availability, err := s.recipes.Availability(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	candidates := ShoppingEntries(availability.Missing)
	if len(candidates) == 0 {
		return []domain.ShoppingListEntry{}, nil
	}

	inserted, err := s.repo.AddEntries(ctx, ownerID, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping entries: %w", err)
	}

	log.Printf("[SHOPPING] Recipe %s: %d missing, %d added for owner %s",
		recipeID, len(candidates), len(inserted), ownerID)
	return inserted, nil
}

// List returns the owner's shopping list
func (s *ShoppingService) List(ctx context.Context, ownerID string) ([]domain.ShoppingListEntry, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	return s.repo.ListEntries(ctx, ownerID)
}

// Remove deletes one shopping-list entry
func (s *ShoppingService) Remove(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return domain.ErrMissingOwner
	}
	if id == "" {
		return domain.ErrInvalidRequest
	}
	return s.repo.DeleteEntry(ctx, ownerID, id)
}
