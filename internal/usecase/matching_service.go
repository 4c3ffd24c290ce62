package usecase

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/pantrymatch/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var tokenSeparatorRegex = regexp.MustCompile(`[\s,]+`)

// Tokens of this length or shorter are ignored by token-overlap matching
// so that "of", "and", "oil" and the like never decide a match.
const maxIgnoredTokenLength = 3

// variationBases fixes the lookup order of ingredientVariations.
var variationBases = []string{"chicken", "beef", "pork", "rice", "onion", "tomato", "milk"}

// ingredientVariations maps a base ingredient to phrasings that satisfy it
var ingredientVariations = map[string][]string{
	"chicken": {"chicken breast", "chicken thigh", "chicken thighs", "chicken wings", "chicken legs", "whole chicken", "chicken drumsticks"},
	"beef":    {"ground beef", "beef steak", "minced beef", "beef mince", "stewing beef", "beef brisket", "sirloin"},
	"pork":    {"pork chops", "pork loin", "pork belly", "ground pork", "pork shoulder", "bacon", "ham"},
	"rice":    {"white rice", "brown rice", "basmati rice", "jasmine rice", "long grain rice", "arborio rice"},
	"onion":   {"red onion", "white onion", "yellow onion", "spring onions", "shallots", "scallions"},
	"tomato":  {"tomatoes", "cherry tomatoes", "plum tomatoes", "chopped tomatoes", "tomato puree", "tinned tomatoes"},
	"milk":    {"whole milk", "skimmed milk", "semi-skimmed milk", "milk powder", "evaporated milk"},
}

// Normalize produces the canonical comparison key for an ingredient or inventory name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MatchFunc decides whether an inventory item satisfies a recipe ingredient
type MatchFunc func(recipeIngredient, inventoryItem string) bool

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
	// Match overrides the fuzzy matcher, mostly for tests.
	Match MatchFunc
}

// MatchingService scores recipes against an inventory
type MatchingService struct {
	match              MatchFunc
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	match := config.Match
	if match == nil {
		match = Matches
	}

	return &MatchingService{
		match:              match,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Matches reports whether a recipe ingredient is satisfied by an inventory item.
// Rules are tried in order: exact, containment, token overlap, variation table.
func Matches(recipeIngredient, inventoryItem string) bool {
	ingredient := Normalize(recipeIngredient)
	item := Normalize(inventoryItem)

	// A blank name would be contained in everything.
	if ingredient == "" || item == "" {
		return false
	}

	if ingredient == item {
		return true
	}

	if strings.Contains(item, ingredient) || strings.Contains(ingredient, item) {
		return true
	}

	if tokensOverlap(significantTokens(ingredient), significantTokens(item)) {
		return true
	}

	return matchesVariation(ingredient, item)
}

// significantTokens splits on whitespace and commas, dropping short tokens
func significantTokens(s string) []string {
	var tokens []string
	for _, word := range tokenSeparatorRegex.Split(s, -1) {
		if len(word) <= maxIgnoredTokenLength {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// tokensOverlap reports whether any token on one side contains, or is contained by, a token on the other
func tokensOverlap(left, right []string) bool {
	for _, l := range left {
		for _, r := range right {
			if strings.Contains(l, r) || strings.Contains(r, l) {
				return true
			}
		}
	}
	return false
}

// matchesVariation applies the variation table. Only the recipe side selects the base.
func matchesVariation(ingredient, item string) bool {
	for _, base := range variationBases {
		if !strings.Contains(ingredient, base) {
			continue
		}
		if strings.Contains(item, base) {
			return true
		}
		for _, variant := range ingredientVariations[base] {
			if strings.Contains(item, variant) {
				return true
			}
		}
	}
	return false
}

// FindMatch returns the first inventory item that satisfies the ingredient
func (s *MatchingService) FindMatch(ingredient string, inventory []string) (string, bool) {
	for _, item := range inventory {
		if s.match(ingredient, item) {
			return item, true
		}
	}
	return "", false
}

// Score checks every recipe ingredient against the whole inventory.
// It never fails: an empty ingredient list scores 0%.
func (s *MatchingService) Score(ingredients []domain.RecipeIngredient, inventory []string) (domain.MatchScore, []domain.IngredientAvailability) {
	availability := make([]domain.IngredientAvailability, 0, len(ingredients))
	matched := 0

	for i, ingredient := range ingredients {
		item, ok := s.FindMatch(ingredient.Name, inventory)
		if ok {
			matched++
		}
		availability = append(availability, domain.IngredientAvailability{
			Index:       i,
			Ingredient:  ingredient,
			Available:   ok,
			MatchedItem: item,
		})

		if s.enableDebugLogging {
			log.Printf("[MATCH] Ingredient: %q | Available: %v | Matched: %q", ingredient.Name, ok, item)
		}
	}

	return newMatchScore(matched, len(ingredients)), availability
}

// newMatchScore derives the percentage, guarding against an empty recipe
func newMatchScore(matched, total int) domain.MatchScore {
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(matched) / float64(total) * 100))
	}

	return domain.MatchScore{
		MatchPercentage:  percentage,
		MatchCount:       matched,
		TotalIngredients: total,
		MissingCount:     total - matched,
	}
}

// Rank scores each recipe and orders them by descending match percentage.
// Equal percentages keep their input order.
func (s *MatchingService) Rank(recipes []domain.Recipe, inventory []string) []domain.ScoredRecipe {
	scored := make([]domain.ScoredRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		score, _ := s.Score(recipe.Ingredients, inventory)

		if s.enableDebugLogging {
			log.Printf("[MATCH] Recipe: %q | %d/%d ingredients | %d%%",
				recipe.Name, score.MatchCount, score.TotalIngredients, score.MatchPercentage)
		}

		scored = append(scored, domain.ScoredRecipe{Recipe: recipe, MatchScore: &score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchPercentage > scored[j].MatchPercentage
	})

	return scored
}

// MissingIngredients returns the ingredients flagged unavailable, in recipe order
func MissingIngredients(availability []domain.IngredientAvailability) []domain.RecipeIngredient {
	var missing []domain.RecipeIngredient
	for _, a := range availability {
		if !a.Available {
			missing = append(missing, a.Ingredient)
		}
	}
	return missing
}
