package domain

// Recipe is the canonical recipe shape produced by the ingress adapter
type Recipe struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	Area         string             `json:"area"`
	Instructions string             `json:"instructions"`
	Thumbnail    string             `json:"thumbnail"`
	Tags         []string           `json:"tags"`
	YouTube      string             `json:"youtube,omitempty"`
	Source       string             `json:"source,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Nutrition    *Nutrients         `json:"nutrition,omitempty"`
}

// RecipeIngredient is an ingredient as sourced plus its parsed measure
type RecipeIngredient struct {
	Name    string  `json:"name"`
	Measure string  `json:"measure"`
	Amount  float64 `json:"amount"`
	Unit    string  `json:"unit"`
}

// RecipeSummary is the lightweight listing row returned by catalog searches
type RecipeSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

// MatchScore is the recipe-level result of scoring against inventory
type MatchScore struct {
	MatchPercentage  int `json:"matchPercentage"`
	MatchCount       int `json:"matchCount"`
	TotalIngredients int `json:"totalIngredients"`
	MissingCount     int `json:"missingCount"`
}

// ScoredRecipe is a recipe augmented with its score.
// A nil MatchScore means the recipe has not been scored.
type ScoredRecipe struct {
	Recipe
	*MatchScore
}

// IngredientAvailability reports whether one recipe ingredient is in stock
type IngredientAvailability struct {
	Index       int              `json:"index"`
	Ingredient  RecipeIngredient `json:"ingredient"`
	Available   bool             `json:"available"`
	MatchedItem string           `json:"matchedInventoryItem,omitempty"`
}

// AvailabilityStatus is the display tier derived from a match percentage
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusPartial     AvailabilityStatus = "partial"
	StatusUnavailable AvailabilityStatus = "unavailable"
	StatusUnknown     AvailabilityStatus = "unknown"
)

// RecipeAvailability is the full availability view of a single recipe
type RecipeAvailability struct {
	Recipe      Recipe                   `json:"recipe"`
	Score       MatchScore               `json:"score"`
	Ingredients []IngredientAvailability `json:"ingredients"`
	Missing     []RecipeIngredient       `json:"missing"`
	Status      AvailabilityStatus       `json:"status"`
	Label       string                   `json:"label"`
	Tier        string                   `json:"tier"`
}

// SuggestionResult is the recipe listing shown to an owner.
// Scored is false when the inventory gave nothing to rank against.
type SuggestionResult struct {
	Scored   bool           `json:"scored"`
	Keywords []string       `json:"keywords"`
	Recipes  []ScoredRecipe `json:"recipes"`
}

// ParseMeasureRequest is the body for the measure parsing endpoint
type ParseMeasureRequest struct {
	Measure string `json:"measure"`
}
