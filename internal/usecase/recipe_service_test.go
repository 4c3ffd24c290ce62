package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pantrymatch/backend/internal/domain"
)

// mockCacheRepository is a mock implementation of domain.CacheRepository
type mockCacheRepository struct {
	data map[string][]byte
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{data: make(map[string][]byte)}
}

func (m *mockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// mockRecipeProvider is a mock implementation of domain.RecipeProvider
type mockRecipeProvider struct {
	searches      map[string][]domain.RecipeSummary
	recipes       map[string]domain.Recipe
	listing       []domain.Recipe
	failSearch    map[string]bool
	failLookup    map[string]bool
	listErr       error
	searchCalls   []string
	lookupCalls   []string
	listCallCount int
}

func newMockRecipeProvider() *mockRecipeProvider {
	return &mockRecipeProvider{
		searches:   make(map[string][]domain.RecipeSummary),
		recipes:    make(map[string]domain.Recipe),
		failSearch: make(map[string]bool),
		failLookup: make(map[string]bool),
	}
}

func (m *mockRecipeProvider) addRecipe(id string, ingredients ...string) {
	recipe := domain.Recipe{ID: id, Name: "Recipe " + id}
	for _, name := range ingredients {
		recipe.Ingredients = append(recipe.Ingredients, domain.RecipeIngredient{Name: name, Measure: "1 cup"})
	}
	m.recipes[id] = recipe
}

func (m *mockRecipeProvider) SearchByIngredient(ctx context.Context, keyword string) ([]domain.RecipeSummary, error) {
	m.searchCalls = append(m.searchCalls, keyword)
	if m.failSearch[keyword] {
		return nil, domain.ErrProviderFailure
	}
	return m.searches[keyword], nil
}

func (m *mockRecipeProvider) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	m.listCallCount++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listing, nil
}

func (m *mockRecipeProvider) LookupRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	m.lookupCalls = append(m.lookupCalls, id)
	if m.failLookup[id] {
		return nil, domain.ErrProviderFailure
	}
	recipe, ok := m.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", domain.ErrRecipeNotFound, id)
	}
	return &recipe, nil
}

func summaries(ids ...string) []domain.RecipeSummary {
	var out []domain.RecipeSummary
	for _, id := range ids {
		out = append(out, domain.RecipeSummary{ID: id, Name: "Recipe " + id})
	}
	return out
}

func newTestRecipeService(provider domain.RecipeProvider, cache domain.CacheRepository, config RecipeServiceConfig, inventory ...string) *RecipeService {
	repo := newMockInventoryRepository()
	for i, name := range inventory {
		repo.items[fmt.Sprintf("owner-1/%d", i)] = domain.InventoryItem{
			ID: fmt.Sprint(i), OwnerID: "owner-1", Name: name, Amount: 1, CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
	}
	return NewRecipeService(newTestInventoryService(repo, baseTime), provider, cache, config)
}

func TestNewRecipeService(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		svc := NewRecipeService(nil, newMockRecipeProvider(), nil, RecipeServiceConfig{})
		if svc.maxCandidates != 50 {
			t.Errorf("maxCandidates = %d, want 50", svc.maxCandidates)
		}
		if svc.cacheTTL != 24*time.Hour {
			t.Errorf("cacheTTL = %v, want 24h", svc.cacheTTL)
		}
	})

	t.Run("keeps configured values", func(t *testing.T) {
		svc := NewRecipeService(nil, newMockRecipeProvider(), nil, RecipeServiceConfig{MaxCandidates: 10, CacheTTL: time.Hour})
		if svc.maxCandidates != 10 || svc.cacheTTL != time.Hour {
			t.Errorf("maxCandidates/cacheTTL = %d/%v, want 10/1h", svc.maxCandidates, svc.cacheTTL)
		}
	})
}

func TestSuggestFallback(t *testing.T) {
	ctx := context.Background()

	provider := newMockRecipeProvider()
	provider.listing = []domain.Recipe{
		{ID: "9", Name: "Pancakes", Ingredients: []domain.RecipeIngredient{{Name: "Flour", Measure: "2 cups"}}},
	}

	t.Run("empty inventory lists unscored recipes", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{})

		result, err := svc.Suggest(ctx, "owner-1")
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}

		if result.Scored {
			t.Error("Scored = true, want false")
		}
		if len(result.Recipes) != 1 {
			t.Fatalf("len(Recipes) = %d, want 1", len(result.Recipes))
		}
		if result.Recipes[0].MatchScore != nil {
			t.Error("fallback recipe has a score, want nil")
		}
		if result.Recipes[0].Ingredients[0].Unit != "cup" {
			t.Errorf("ingredient unit = %q, want cup", result.Recipes[0].Ingredients[0].Unit)
		}
		if len(provider.searchCalls) != 0 {
			t.Errorf("searchCalls = %v, want none", provider.searchCalls)
		}
	})

	t.Run("inventory without main ingredients lists unscored recipes", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{}, "salt", "olive oil")

		result, err := svc.Suggest(ctx, "owner-1")
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		if result.Scored || len(result.Keywords) != 0 {
			t.Errorf("Scored/Keywords = %v/%v, want false/[]", result.Scored, result.Keywords)
		}
	})

	t.Run("listing failure surfaces", func(t *testing.T) {
		broken := newMockRecipeProvider()
		broken.listErr = domain.ErrProviderFailure
		svc := newTestRecipeService(broken, nil, RecipeServiceConfig{})

		if _, err := svc.Suggest(ctx, "owner-1"); !errors.Is(err, domain.ErrProviderFailure) {
			t.Errorf("error = %v, want ErrProviderFailure", err)
		}
	})
}

func TestSuggestRanked(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks candidates from every keyword", func(t *testing.T) {
		provider := newMockRecipeProvider()
		provider.searches["chicken"] = summaries("1", "2")
		provider.searches["rice"] = summaries("2", "3")
		provider.addRecipe("1", "chicken", "saffron", "cumin", "paprika")
		provider.addRecipe("2", "chicken", "rice")
		provider.addRecipe("3", "rice", "saffron")

		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{}, "chicken breast", "basmati rice")

		result, err := svc.Suggest(ctx, "owner-1")
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}

		if !result.Scored {
			t.Fatal("Scored = false, want true")
		}
		if len(provider.searchCalls) != 2 || provider.searchCalls[0] != "chicken" || provider.searchCalls[1] != "rice" {
			t.Errorf("searchCalls = %v, want [chicken rice]", provider.searchCalls)
		}
		if len(provider.lookupCalls) != 3 {
			t.Errorf("lookupCalls = %v, want 3 unique ids", provider.lookupCalls)
		}

		want := []struct {
			id  string
			pct int
		}{{"2", 100}, {"3", 50}, {"1", 25}}
		if len(result.Recipes) != len(want) {
			t.Fatalf("len(Recipes) = %d, want %d", len(result.Recipes), len(want))
		}
		for i, w := range want {
			if result.Recipes[i].ID != w.id || result.Recipes[i].MatchPercentage != w.pct {
				t.Errorf("Recipes[%d] = %s at %d%%, want %s at %d%%",
					i, result.Recipes[i].ID, result.Recipes[i].MatchPercentage, w.id, w.pct)
			}
		}
	})

	t.Run("failed lookups are skipped", func(t *testing.T) {
		provider := newMockRecipeProvider()
		provider.searches["chicken"] = summaries("1", "2", "3")
		provider.searches["beef"] = summaries("4")
		provider.failSearch["chicken"] = true
		provider.addRecipe("4", "beef")
		provider.addRecipe("5", "beef")
		provider.searches["rice"] = summaries("5", "6")
		provider.failLookup["6"] = true

		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{}, "chicken", "beef mince", "rice")

		result, err := svc.Suggest(ctx, "owner-1")
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}

		if len(provider.searchCalls) != 3 {
			t.Errorf("searchCalls = %v, want all three keywords tried", provider.searchCalls)
		}
		if len(result.Recipes) != 2 {
			t.Fatalf("len(Recipes) = %d, want 2", len(result.Recipes))
		}
		if result.Recipes[0].ID != "4" || result.Recipes[1].ID != "5" {
			t.Errorf("Recipes = [%s %s], want [4 5]", result.Recipes[0].ID, result.Recipes[1].ID)
		}
	})

	t.Run("caps detail fetches", func(t *testing.T) {
		provider := newMockRecipeProvider()
		provider.searches["egg"] = summaries("1", "2", "3", "4", "5")
		for _, id := range []string{"1", "2", "3", "4", "5"} {
			provider.addRecipe(id, "egg")
		}

		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{MaxCandidates: 3}, "eggs")

		result, err := svc.Suggest(ctx, "owner-1")
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}

		if len(provider.lookupCalls) != 3 {
			t.Errorf("lookupCalls = %v, want the first 3 candidates", provider.lookupCalls)
		}
		if len(result.Recipes) != 3 {
			t.Errorf("len(Recipes) = %d, want 3", len(result.Recipes))
		}
		for i, id := range []string{"1", "2", "3"} {
			if result.Recipes[i].ID != id {
				t.Errorf("Recipes[%d] = %s, want %s", i, result.Recipes[i].ID, id)
			}
		}
	})

	t.Run("cached recipes skip the provider", func(t *testing.T) {
		provider := newMockRecipeProvider()
		provider.searches["pasta"] = summaries("1", "2")
		provider.addRecipe("1", "pasta")
		provider.addRecipe("2", "pasta", "basil")
		cache := newMockCacheRepository()

		svc := newTestRecipeService(provider, cache, RecipeServiceConfig{}, "pasta")

		if _, err := svc.Suggest(ctx, "owner-1"); err != nil {
			t.Fatalf("first Suggest() error = %v", err)
		}
		if len(cache.data) != 2 {
			t.Errorf("cached %d recipes, want 2", len(cache.data))
		}

		provider.lookupCalls = nil
		result, err := svc.Suggest(ctx, "owner-1")
		if err != nil {
			t.Fatalf("second Suggest() error = %v", err)
		}
		if len(provider.lookupCalls) != 0 {
			t.Errorf("lookupCalls = %v, want none on a warm cache", provider.lookupCalls)
		}
		if len(result.Recipes) != 2 || result.Recipes[0].ID != "1" {
			t.Errorf("Recipes = %+v, want 1 first", result.Recipes)
		}
	})

	t.Run("a cancelled caller does not interrupt the loop", func(t *testing.T) {
		provider := newMockRecipeProvider()
		provider.searches["lamb"] = summaries("1")
		provider.addRecipe("1", "lamb")

		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{SearchPause: time.Millisecond}, "lamb shoulder")

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		result, err := svc.Suggest(cancelled, "owner-1")
		if err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
		if len(result.Recipes) != 1 {
			t.Errorf("len(Recipes) = %d, want 1", len(result.Recipes))
		}
	})
}

func TestGetRecipe(t *testing.T) {
	ctx := context.Background()
	provider := newMockRecipeProvider()
	provider.addRecipe("7", "flour")

	t.Run("empty id", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{})
		if _, err := svc.GetRecipe(ctx, " "); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{})
		if _, err := svc.GetRecipe(ctx, "404"); !errors.Is(err, domain.ErrRecipeNotFound) {
			t.Errorf("error = %v, want ErrRecipeNotFound", err)
		}
	})

	t.Run("parses and caches", func(t *testing.T) {
		cache := newMockCacheRepository()
		svc := newTestRecipeService(provider, cache, RecipeServiceConfig{})

		recipe, err := svc.GetRecipe(ctx, "7")
		if err != nil {
			t.Fatalf("GetRecipe() error = %v", err)
		}
		if recipe.Ingredients[0].Amount != 1 || recipe.Ingredients[0].Unit != "cup" {
			t.Errorf("ingredient = %+v, want 1 cup", recipe.Ingredients[0])
		}
		if _, ok := cache.data["recipe:7"]; !ok {
			t.Error("recipe:7 was not cached")
		}
	})

	t.Run("corrupt cache entry falls through to the provider", func(t *testing.T) {
		cache := newMockCacheRepository()
		cache.data["recipe:7"] = []byte("not json")
		svc := newTestRecipeService(provider, cache, RecipeServiceConfig{})

		recipe, err := svc.GetRecipe(ctx, "7")
		if err != nil {
			t.Fatalf("GetRecipe() error = %v", err)
		}
		if recipe.ID != "7" {
			t.Errorf("ID = %s, want 7", recipe.ID)
		}
	})

	t.Run("corrupt cache entry is evicted", func(t *testing.T) {
		cache := newMockCacheRepository()
		cache.data["recipe:404"] = []byte("not json")
		svc := newTestRecipeService(provider, cache, RecipeServiceConfig{})

		if _, err := svc.GetRecipe(ctx, "404"); !errors.Is(err, domain.ErrRecipeNotFound) {
			t.Errorf("error = %v, want ErrRecipeNotFound", err)
		}
		if _, ok := cache.data["recipe:404"]; ok {
			t.Error("recipe:404 is still cached")
		}
	})
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()
	provider := newMockRecipeProvider()
	provider.recipes["52"] = domain.Recipe{
		ID:   "52",
		Name: "Chicken with Salt",
		Ingredients: []domain.RecipeIngredient{
			{Name: "chicken", Measure: "1 lb"},
			{Name: "salt", Measure: "1 tsp"},
		},
	}

	t.Run("partial match lists the missing ingredient", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{}, "chicken breast")

		result, err := svc.Availability(ctx, "owner-1", "52")
		if err != nil {
			t.Fatalf("Availability() error = %v", err)
		}

		if result.Score.MatchPercentage != 50 || result.Score.MissingCount != 1 {
			t.Errorf("Score = %+v, want 50%% with 1 missing", result.Score)
		}
		if result.Status != domain.StatusPartial || result.Label != "Missing a few" || result.Tier != "yellow" {
			t.Errorf("Status = %s/%s/%s, want partial", result.Status, result.Label, result.Tier)
		}
		if len(result.Missing) != 1 || result.Missing[0].Name != "salt" || result.Missing[0].Unit != "tsp" {
			t.Errorf("Missing = %+v, want [salt 1 tsp]", result.Missing)
		}
		if result.Ingredients[0].MatchedItem != "chicken breast" {
			t.Errorf("MatchedItem = %q, want chicken breast", result.Ingredients[0].MatchedItem)
		}
	})

	t.Run("matched item keeps the inventory spelling", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{}, "Chicken Breast")

		result, err := svc.Availability(ctx, "owner-1", "52")
		if err != nil {
			t.Fatalf("Availability() error = %v", err)
		}
		if !result.Ingredients[0].Available || result.Ingredients[0].MatchedItem != "Chicken Breast" {
			t.Errorf("Ingredients[0] = %+v, want matched by Chicken Breast", result.Ingredients[0])
		}
	})

	t.Run("recipe without ingredients is unknown", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{}, "chicken breast")

		result, err := svc.Evaluate(ctx, "owner-1", domain.Recipe{Name: "Water"})
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if result.Status != domain.StatusUnknown || result.Score.MatchPercentage != 0 {
			t.Errorf("Status/percentage = %s/%d, want unknown/0", result.Status, result.Score.MatchPercentage)
		}
	})

	t.Run("missing owner", func(t *testing.T) {
		svc := newTestRecipeService(provider, nil, RecipeServiceConfig{})
		if _, err := svc.Availability(ctx, "", "52"); !errors.Is(err, domain.ErrMissingOwner) {
			t.Errorf("error = %v, want ErrMissingOwner", err)
		}
	})
}
