package services

import (
	"strings"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// ingredientAliases maps spoken or misspelled names to planned ingredient keys
var ingredientAliases = map[string]string{
	"four":          models.IngredientFlour, // the live feed sends this typo
	"plain flour":   models.IngredientFlour,
	"egg":           models.IngredientEggs,
	"yoghurt":       models.IngredientYogurt,
	"oat":           models.IngredientOats,
	"rolled oats":   models.IngredientOats,
	"loaf":          models.IngredientBread,
	"loaves":        models.IngredientBread,
	"bread loaf":    models.IngredientBread,
	"banana":        models.IngredientFruit,
	"bananas":       models.IngredientFruit,
	"apple":         models.IngredientFruit,
	"apples":        models.IngredientFruit,
	"fruit pieces":  models.IngredientFruit,
	"baking powder": models.IngredientBakingPowder,
	"bp":            models.IngredientBakingPowder,
	"milo powder":   models.IngredientMilo,
}

// NormalizeIngredientKey trims and lowercases a raw item key
func NormalizeIngredientKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// MatchIngredient resolves a free-text name to a planned ingredient key
func MatchIngredient(name string) (string, bool) {
	name = NormalizeIngredientKey(name)
	name = strings.Trim(name, ".:-=*")

	// Collapse internal whitespace and underscores
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
	if name == "" {
		return "", false
	}

	if key, ok := ingredientAliases[name]; ok {
		return key, true
	}

	key := strings.ReplaceAll(name, " ", "_")
	if models.IsKnownIngredient(key) {
		return key, true
	}

	// Simple plural: "oranges" is not a key but "eggs" already is
	if trimmed := strings.TrimSuffix(name, "s"); trimmed != name {
		if key, ok := ingredientAliases[trimmed]; ok {
			return key, true
		}
	}

	return "", false
}

// MergeDayItems sums Monday and Tuesday item counts under normalized keys.
// The upstream "four" typo is renamed to "flour" unless "flour" is present.
func MergeDayItems(monday, tuesday map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(monday)+len(tuesday))

	for _, day := range []map[string]float64{monday, tuesday} {
		for key, qty := range day {
			clean := NormalizeIngredientKey(key)
			merged[clean] += qty
		}
	}

	if four, ok := merged["four"]; ok && four != 0 && merged["flour"] == 0 {
		merged["flour"] = four
		delete(merged, "four")
	}

	return merged
}
