package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pantrymatch/backend/internal/domain"
)

// Defaults for the suggestion flow
const (
	defaultMaxCandidates = 50
	defaultRecipeTTL     = 24 * time.Hour
)

// RecipeServiceConfig holds configuration for the recipe service
type RecipeServiceConfig struct {
	CacheTTL           time.Duration
	SearchPause        time.Duration
	DetailPause        time.Duration
	MaxCandidates      int
	EnableDebugLogging bool
}

// RecipeService suggests and evaluates recipes against an owner's inventory
type RecipeService struct {
	inventory     *InventoryService
	provider      domain.RecipeProvider
	cache         domain.CacheRepository
	matching      *MatchingService
	keywords      *KeywordDetector
	searchPacer   *Pacer
	detailPacer   *Pacer
	maxCandidates int
	cacheTTL      time.Duration
}

// NewRecipeService creates a new recipe service with dependencies
func NewRecipeService(
	inventory *InventoryService,
	provider domain.RecipeProvider,
	cache domain.CacheRepository,
	config RecipeServiceConfig,
) *RecipeService {
	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultRecipeTTL
	}

	return &RecipeService{
		inventory:     inventory,
		provider:      provider,
		cache:         cache,
		matching:      NewMatchingService(MatchConfig{EnableDebugLogging: config.EnableDebugLogging}),
		keywords:      NewKeywordDetector(config.EnableDebugLogging),
		searchPacer:   NewPacer(config.SearchPause),
		detailPacer:   NewPacer(config.DetailPause),
		maxCandidates: maxCandidates,
		cacheTTL:      cacheTTL,
	}
}

// Suggest builds the recipe listing for an owner.
// Flow: inventory -> keywords -> paced searches -> capped, paced detail fetches -> rank.
// Without inventory or keywords it falls back to the catalog's unscored listing.
func (s *RecipeService) Suggest(ctx context.Context, ownerID string) (*domain.SuggestionResult, error) {
	entries, err := s.inventory.Consolidated(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	names := EntryNames(entries)
	keywords := s.keywords.DetectMainIngredients(names)
	if len(names) == 0 || len(keywords) == 0 {
		return s.unscoredListing(ctx, keywords)
	}

	// The fan-out is not interruptible; a caller that gives up discards the result.
	loopCtx := context.WithoutCancel(ctx)

	candidates := s.searchCandidates(loopCtx, keywords)
	recipes := s.fetchDetails(loopCtx, candidates)

	log.Printf("[RECIPES] Owner %s: %d keywords, %d candidates, %d recipes scored",
		ownerID, len(keywords), len(candidates), len(recipes))

	return &domain.SuggestionResult{
		Scored:   true,
		Keywords: keywords,
		Recipes:  s.matching.Rank(recipes, names),
	}, nil
}

// unscoredListing returns catalog recipes without scores
func (s *RecipeService) unscoredListing(ctx context.Context, keywords []string) (*domain.SuggestionResult, error) {
	recipes, err := s.provider.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	listing := make([]domain.ScoredRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		recipe.Ingredients = ParseIngredients(recipe.Ingredients)
		listing = append(listing, domain.ScoredRecipe{Recipe: recipe})
	}

	return &domain.SuggestionResult{
		Scored:   false,
		Keywords: keywords,
		Recipes:  listing,
	}, nil
}

// searchCandidates runs one catalog search per keyword, strictly in sequence.
// Ids are deduplicated in first-seen order and capped to maxCandidates.
func (s *RecipeService) searchCandidates(ctx context.Context, keywords []string) []string {
	seen := make(map[string]bool)
	var ids []string

	s.searchPacer.Run(ctx, len(keywords), func(ctx context.Context, i int) error {
		summaries, err := s.provider.SearchByIngredient(ctx, keywords[i])
		if err != nil {
			return err
		}
		for _, summary := range summaries {
			if summary.ID == "" || seen[summary.ID] {
				continue
			}
			seen[summary.ID] = true
			ids = append(ids, summary.ID)
		}
		return nil
	}, func(i int, err error) {
		log.Printf("[RECIPES] Search for %q failed, skipping: %v", keywords[i], err)
	})

	if len(ids) > s.maxCandidates {
		ids = ids[:s.maxCandidates]
	}
	return ids
}

// fetchDetails resolves candidate ids to full recipes. Cached recipes are
// served immediately; the rest are fetched through the detail pacer.
// Failed lookups are dropped and candidate order is kept.
func (s *RecipeService) fetchDetails(ctx context.Context, ids []string) []domain.Recipe {
	resolved := make([]*domain.Recipe, len(ids))
	var pending []int

	for i, id := range ids {
		if recipe, err := s.getFromCache(ctx, id); err == nil {
			resolved[i] = recipe
			continue
		}
		pending = append(pending, i)
	}

	s.detailPacer.Run(ctx, len(pending), func(ctx context.Context, n int) error {
		i := pending[n]
		recipe, err := s.fetchAndCache(ctx, ids[i])
		if err != nil {
			return err
		}
		resolved[i] = recipe
		return nil
	}, func(n int, err error) {
		log.Printf("[RECIPES] Detail lookup for %s failed, skipping: %v", ids[pending[n]], err)
	})

	recipes := make([]domain.Recipe, 0, len(ids))
	for _, recipe := range resolved {
		if recipe != nil {
			recipes = append(recipes, *recipe)
		}
	}
	return recipes
}

// GetRecipe returns a recipe with parsed ingredients, from cache when possible
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidRequest
	}

	if recipe, err := s.getFromCache(ctx, id); err == nil {
		return recipe, nil
	}

	return s.fetchAndCache(ctx, id)
}

// fetchAndCache looks a recipe up at the provider and caches it
func (s *RecipeService) fetchAndCache(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.provider.LookupRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ParseIngredients(recipe.Ingredients)

	if err := s.setInCache(ctx, id, recipe); err != nil {
		log.Printf("[RECIPES] Failed to cache recipe %s: %v", id, err)
	}

	return recipe, nil
}

// Availability scores a single catalog recipe for an owner
func (s *RecipeService) Availability(ctx context.Context, ownerID, recipeID string) (*domain.RecipeAvailability, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(ctx, ownerID, *recipe)
}

// Evaluate scores an already-fetched recipe, parsing its measures first.
// Used for catalog recipes and imported ones alike.
func (s *RecipeService) Evaluate(ctx context.Context, ownerID string, recipe domain.Recipe) (*domain.RecipeAvailability, error) {
	entries, err := s.inventory.Consolidated(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	recipe.Ingredients = ParseIngredients(recipe.Ingredients)
	score, ingredients := s.matching.Score(recipe.Ingredients, EntryNames(entries))
	status := ClassifyScore(&score)

	return &domain.RecipeAvailability{
		Recipe:      recipe,
		Score:       score,
		Ingredients: ingredients,
		Missing:     MissingIngredients(ingredients),
		Status:      status,
		Label:       StatusLabel(status),
		Tier:        StatusTier(status),
	}, nil
}

// recipeCacheKey builds the cache key for a recipe id
func recipeCacheKey(id string) string {
	return fmt.Sprintf("recipe:%s", strings.TrimSpace(id))
}

// getFromCache retrieves a recipe from cache
func (s *RecipeService) getFromCache(ctx context.Context, id string) (*domain.Recipe, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	data, err := s.cache.Get(ctx, recipeCacheKey(id))
	if err != nil {
		return nil, err
	}

	var recipe domain.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		if delErr := s.cache.Delete(ctx, recipeCacheKey(id)); delErr != nil {
			log.Printf("[RECIPES] Failed to evict unreadable cache entry for %s: %v", id, delErr)
		}
		return nil, errors.Join(domain.ErrCacheMiss, err)
	}
	return &recipe, nil
}

// setInCache stores a recipe in cache
func (s *RecipeService) setInCache(ctx context.Context, id string, recipe *domain.Recipe) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, recipeCacheKey(id), data, s.cacheTTL)
}
