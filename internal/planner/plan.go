package planner

import (
	"math"
	"sort"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// feedUnitLabels covers the item keys the live feed is known to send
var feedUnitLabels = map[string]string{
	models.IngredientMilk:         "L",
	"tea":                         "kg",
	models.IngredientBread:        "units",
	models.IngredientFruit:        "pieces",
	models.IngredientOats:         "kg",
	models.IngredientYogurt:       "kg",
	models.IngredientFlour:        "kg",
	models.IngredientEggs:         "eggs",
	models.IngredientSugar:        "kg",
	models.IngredientBakingPowder: "packs",
	models.IngredientButter:       "g",
	models.IngredientMilo:         "g",
}

// ComputePlan runs the whole pipeline for one recomputation. It is pure:
// identical inputs always produce an identical Plan.
func ComputePlan(att models.Attendance, leftovers map[string]float64, source models.SourceData) *models.Plan {
	att = clampAttendance(att)

	ingredients := Requirements(att)
	netted := Net(ingredients, leftovers)
	selection := AggregateCost(NormalizeVendorTotals(source.VendorTotals), netted.ToBuyRatio)
	calories := EstimateCalories(att, netted.LeftoverRatio)

	mode := source.Mode
	if mode == "" {
		mode = models.SourceModePending
	}

	return &models.Plan{
		Attendance:              att,
		TotalChildren:           att.TotalChildren(),
		Items:                   netted.Items,
		ToBuyRatio:              netted.ToBuyRatio,
		LeftoverRatio:           netted.LeftoverRatio,
		CheapestVendor:          selection.CheapestVendor,
		CheapestName:            selection.CheapestName,
		AdjustedCost:            selection.AdjustedCost,
		Vendors:                 selection.Comparison,
		OptimalCalories:         calories.OptimalCalories,
		EstimatedActualCalories: calories.EstimatedActualCalories,
		Calories:                calories,
		Mode:                    mode,
		ModeMessage:             mode.Disclosure(),
		FeedItems:               advisoryItems(source.Ingredients),
	}
}

// advisoryItems lists live feed item counts sorted by key
func advisoryItems(counts map[string]float64) []models.AdvisoryItem {
	if len(counts) == 0 {
		return nil
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]models.AdvisoryItem, 0, len(keys))
	for _, k := range keys {
		qty := counts[k]
		items = append(items, models.AdvisoryItem{
			Key:       k,
			UnitLabel: feedUnitLabels[k],
			Qty:       qty,
			RoundedTo: int(math.Round(qty)),
		})
	}
	return items
}
