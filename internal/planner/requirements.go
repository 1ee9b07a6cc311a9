package planner

import (
	"math"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// Per-child coefficients
const (
	milkLitersPerChild   = 0.3
	fruitPiecesPerChild  = 1.0
	yogurtKgPerChild     = 0.1
	oatsKgPerChild       = 0.1
	breadUnitsPerChild   = 1.0
	miloGramsPerMilkL    = 50.0
	sugarGramsPerMilkL   = 10.0
	sugarGramsPerOatsKg  = 50.0
	flourGramsPerTuesday = 25.0
	eggsPerTuesdayChild  = 0.25
	butterGramsPerTue    = 8.0
	bakingPowderGramsTue = 5.0
)

// Requirements maps attendance to the required ingredient quantities, in
// models.IngredientOrder. Tuesday is pancake day, so flour, eggs, butter and
// baking powder only scale with Tuesday attendance.
func Requirements(att models.Attendance) []models.Ingredient {
	att = clampAttendance(att)
	total := float64(att.TotalChildren())
	tuesday := float64(att.Tuesday)

	milk := total * milkLitersPerChild
	oats := total * oatsKgPerChild

	quantities := map[string]float64{
		models.IngredientMilk:         milk,
		models.IngredientFruit:        total * fruitPiecesPerChild,
		models.IngredientYogurt:       total * yogurtKgPerChild,
		models.IngredientOats:         oats,
		models.IngredientBread:        total * breadUnitsPerChild,
		models.IngredientMilo:         milk * miloGramsPerMilkL,
		models.IngredientSugar:        (milk*sugarGramsPerMilkL + oats*sugarGramsPerOatsKg) / 1000,
		models.IngredientFlour:        tuesday * flourGramsPerTuesday / 1000,
		models.IngredientEggs:         math.Ceil(tuesday * eggsPerTuesdayChild), // partial eggs are not purchasable
		models.IngredientButter:       tuesday * butterGramsPerTue,
		models.IngredientBakingPowder: tuesday * bakingPowderGramsTue,
	}

	ingredients := make([]models.Ingredient, 0, len(models.IngredientOrder))
	for _, key := range models.IngredientOrder {
		ingredients = append(ingredients, models.Ingredient{
			Key:         key,
			Unit:        models.IngredientUnits[key],
			RequiredQty: quantities[key],
		})
	}
	return ingredients
}
