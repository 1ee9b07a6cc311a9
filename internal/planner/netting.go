package planner

import (
	"math"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// NettingResult is the output of netting requirements against leftovers
type NettingResult struct {
	Items []models.ShoppingPlanItem
	// ToBuyRatio is the mean fraction of each ingredient still to be bought.
	ToBuyRatio float64
	// LeftoverRatio is the mean fraction of each ingredient already on hand.
	// It is not clamped and exceeds 1 when leftovers outstrip requirements.
	LeftoverRatio float64
}

// Net subtracts leftovers from requirements. A key missing from leftovers is
// unset and counts as 0; a key present with 0 was explicitly emptied.
// Ingredients with no requirement are left out of both ratios.
func Net(ingredients []models.Ingredient, leftovers map[string]float64) NettingResult {
	result := NettingResult{
		Items: make([]models.ShoppingPlanItem, 0, len(ingredients)),
	}

	var toBuySum, leftoverSum float64
	counted := 0

	// Per-ingredient leftover fractions are capped so their sum stays finite
	maxFraction := math.MaxFloat64 / float64(2*len(ingredients)+1)

	for _, ing := range ingredients {
		reported, ok := leftovers[ing.Key]
		leftover := sanitizeQty(reported)

		toBuy := math.Max(ing.RequiredQty-leftover, 0)

		result.Items = append(result.Items, models.ShoppingPlanItem{
			Ingredient:       ing.Key,
			Unit:             ing.Unit,
			UnitLabel:        ing.Unit.Label(),
			RequiredQty:      ing.RequiredQty,
			LeftoverQty:      leftover,
			LeftoverReported: ok,
			ToBuyQty:         toBuy,
			DisplayRequired:  models.RoundForDisplay(ing.Key, ing.RequiredQty),
			DisplayToBuy:     models.RoundForDisplay(ing.Key, toBuy),
		})

		if ing.RequiredQty > 0 {
			toBuySum += toBuy / ing.RequiredQty
			leftoverSum += math.Min(leftover/ing.RequiredQty, maxFraction)
			counted++
		}
	}

	if counted > 0 {
		result.ToBuyRatio = toBuySum / float64(counted)
		result.LeftoverRatio = leftoverSum / float64(counted)
	}

	return result
}

// sanitizeQty treats negative and non-finite leftovers as nothing on hand
func sanitizeQty(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}
	return q
}
