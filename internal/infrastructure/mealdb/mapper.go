package mealdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pantrymatch/backend/internal/domain"
)

// maxIngredientSlots is the number of strIngredientN/strMeasureN pairs a meal carries
const maxIngredientSlots = 20

// DefaultNutrition is attached to recipes the catalog gives no nutrition for
var DefaultNutrition = domain.Nutrients{
	Calories: 450,
	Protein:  25,
	Carbs:    45,
	Fat:      18,
}

// MapMeal converts a raw catalog meal into the canonical Recipe.
// This is the only place provider field names are known.
func MapMeal(meal map[string]interface{}) domain.Recipe {
	recipe := domain.Recipe{
		ID:           stringField(meal, "idMeal"),
		Name:         stringField(meal, "strMeal"),
		Category:     stringField(meal, "strCategory"),
		Area:         stringField(meal, "strArea"),
		Instructions: stringField(meal, "strInstructions"),
		Thumbnail:    stringField(meal, "strMealThumb"),
		Tags:         splitTags(stringField(meal, "strTags")),
		YouTube:      stringField(meal, "strYoutube"),
		Source:       stringField(meal, "strSource"),
		Ingredients:  extractIngredients(meal),
	}

	nutrition := DefaultNutrition
	if v, ok := numberField(meal, "calories"); ok {
		nutrition.Calories = v
	}
	if v, ok := numberField(meal, "protein"); ok {
		nutrition.Protein = v
	}
	if v, ok := numberField(meal, "carbs"); ok {
		nutrition.Carbs = v
	}
	if v, ok := numberField(meal, "fat"); ok {
		nutrition.Fat = v
	}
	recipe.Nutrition = &nutrition

	return recipe
}

// MapSummary converts a raw search row into a RecipeSummary
func MapSummary(meal map[string]interface{}) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:        stringField(meal, "idMeal"),
		Name:      stringField(meal, "strMeal"),
		Thumbnail: stringField(meal, "strMealThumb"),
	}
}

// extractIngredients reads the numbered ingredient slots, dropping blank ones.
// Measures stay raw; parsing happens in the core.
func extractIngredients(meal map[string]interface{}) []domain.RecipeIngredient {
	ingredients := []domain.RecipeIngredient{}
	for i := 1; i <= maxIngredientSlots; i++ {
		name := stringField(meal, fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		ingredients = append(ingredients, domain.RecipeIngredient{
			Name:    name,
			Measure: stringField(meal, fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return ingredients
}

// stringField returns a trimmed string value, or "" for null and non-strings
func stringField(meal map[string]interface{}, key string) string {
	if v, ok := meal[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// numberField reads a numeric value that may arrive as a JSON number or string
func numberField(meal map[string]interface{}, key string) (float64, bool) {
	switch v := meal[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// splitTags splits the comma-separated tag string
func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
