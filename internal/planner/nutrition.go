package planner

import (
	"math"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// caloriesPerChild is the breakfast guideline per child per service day
const caloriesPerChild = 450

// rawCalorieLimit bounds the unclamped estimate to a portable int range
const rawCalorieLimit = math.MaxInt32

// EstimateCalories derives the target and estimated calorie totals. The raw
// estimate is kept unclamped; the displayed estimate is held to
// [0, optimal].
func EstimateCalories(att models.Attendance, leftoverRatio float64) models.CalorieEstimate {
	att = clampAttendance(att)
	optimal := caloriesPerChild * att.TotalChildren()

	raw := rawCalories(optimal, leftoverRatio)

	estimated := raw
	if estimated < 0 {
		estimated = 0
	}
	if estimated > optimal {
		estimated = optimal
	}

	var fill float64
	if optimal > 0 {
		fill = float64(estimated) / float64(optimal) * 100
	}

	return models.CalorieEstimate{
		OptimalCalories:         optimal,
		EstimatedActualCalories: estimated,
		RawActualCalories:       raw,
		FillPercent:             fill,
	}
}

// rawCalories is round(optimal × (1 − leftoverRatio)) held to
// ±rawCalorieLimit. A NaN ratio counts as no leftovers; +Inf as an
// unbounded surplus.
func rawCalories(optimal int, leftoverRatio float64) int {
	if optimal == 0 || math.IsNaN(leftoverRatio) {
		return optimal
	}

	raw := math.Round(float64(optimal) * (1 - leftoverRatio))
	if raw < -rawCalorieLimit {
		return -rawCalorieLimit
	}
	if raw > rawCalorieLimit {
		return rawCalorieLimit
	}
	return int(raw)
}
