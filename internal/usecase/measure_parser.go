package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pantrymatch/backend/internal/domain"
)

// Default values for a measure that carries no usable quantity or unit
const (
	defaultMeasureAmount = 1.0
	defaultMeasureUnit   = "item"
)

// leadingQuantityRegex matches the numeric or fractional prefix of a measure ("1 1/2 ", "250", ".5")
var leadingQuantityRegex = regexp.MustCompile(`^[\d./\s]+`)

// unitSynonyms maps lower-cased unit spellings to their canonical short form
var unitSynonyms = map[string]string{
	"tsp":         "tsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tbsp":        "tbsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"cup":         "cup",
	"cups":        "cup",
	"ml":          "ml",
	"g":           "g",
	"kg":          "kg",
	"oz":          "oz",
	"ounce":       "oz",
	"ounces":      "oz",
	"lb":          "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"l":           "l",
	"liter":       "l",
	"liters":      "l",
}

// Measure is a parsed quantity and canonical unit
type Measure struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ParseMeasure turns free text such as "1 1/2 cups" into an amount and a canonical unit.
// It never fails; anything unreadable falls back to 1 item.
func ParseMeasure(text string) Measure {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Measure{Amount: defaultMeasureAmount, Unit: defaultMeasureUnit}
	}

	quantity := leadingQuantityRegex.FindString(trimmed)
	if quantity == "" {
		return Measure{Amount: defaultMeasureAmount, Unit: CanonicalUnit(trimmed)}
	}

	unit := strings.TrimSpace(trimmed[len(quantity):])
	if unit == "" {
		unit = defaultMeasureUnit
	}

	return Measure{Amount: parseQuantity(quantity), Unit: CanonicalUnit(unit)}
}

// parseQuantity reads a whole number, decimal or fraction from the leading quantity.
// Two parts combine only as a mixed number ("1 1/2" is 1.5); otherwise the
// first part wins, so "2 400" in "2 400g tins" reads as 2.
func parseQuantity(s string) float64 {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return defaultMeasureAmount
	}

	if len(parts) == 2 && isMixedNumber(parts[0], parts[1]) {
		whole, _ := strconv.ParseFloat(parts[0], 64)
		if fraction, ok := parseQuantityPart(parts[1]); ok {
			return whole + fraction
		}
	}

	value, ok := parseQuantityPart(parts[0])
	if !ok {
		return defaultMeasureAmount
	}
	return value
}

// isMixedNumber reports whether whole and fraction read as "N a/b"
func isMixedNumber(whole, fraction string) bool {
	if !strings.Contains(fraction, "/") || strings.ContainsAny(whole, "./") {
		return false
	}
	_, err := strconv.Atoi(whole)
	return err == nil
}

func parseQuantityPart(part string) (float64, bool) {
	numerator, denominator, isFraction := strings.Cut(part, "/")
	if !isFraction {
		value, err := strconv.ParseFloat(part, 64)
		return value, err == nil
	}

	a, err := strconv.ParseFloat(numerator, 64)
	if err != nil {
		return 0, false
	}
	b, err := strconv.ParseFloat(denominator, 64)
	if err != nil || b == 0 {
		return 0, false
	}
	return a / b, true
}

// CanonicalUnit maps a unit through the synonym table, case-insensitively.
// Unknown units are returned unchanged.
func CanonicalUnit(unit string) string {
	if canonical, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return canonical
	}
	return unit
}

// ParseIngredients fills Amount and Unit from each ingredient's Measure
func ParseIngredients(ingredients []domain.RecipeIngredient) []domain.RecipeIngredient {
	parsed := make([]domain.RecipeIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		m := ParseMeasure(ingredient.Measure)
		ingredient.Amount = m.Amount
		ingredient.Unit = m.Unit
		parsed = append(parsed, ingredient)
	}
	return parsed
}
