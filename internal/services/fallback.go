package services

import (
	"math"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// fallbackBaseChildren is the attendance the demo base quantities are sized for
const fallbackBaseChildren = 50

type fallbackProduct struct {
	name    string
	unit    string
	baseQty float64
	prices  [3]float64 // in models.VendorPriority order
}

var fallbackProducts = []fallbackProduct{
	{"Milk 2L", "bottles", 5, [3]float64{4.2, 4.6, 4.5}},
	{"Bread Loaf", "units", 10, [3]float64{1.9, 2.1, 2.0}},
	{"Bananas", "kg", 6, [3]float64{3.5, 3.9, 3.8}},
	{"Butter", "packs", 2, [3]float64{5.2, 5.8, 5.6}},
	{"Yogurt 1kg", "tubs", 3, [3]float64{4.8, 5.1, 5.0}},
	{"Eggs (12)", "boxes", 3, [3]float64{7.5, 7.9, 7.8}},
}

// FallbackData builds the deterministic demo dataset for the given attendance.
// Every product is bought at least once, even for zero attendance.
func FallbackData(att models.Attendance) models.SourceData {
	scale := float64(att.TotalChildren()) / fallbackBaseChildren

	totals := make(map[string]float64, len(models.VendorPriority))
	for _, v := range models.VendorPriority {
		totals[string(v)] = 0
	}

	products := make([]models.FallbackProduct, 0, len(fallbackProducts))
	for _, p := range fallbackProducts {
		qty := int(math.Max(1, math.Round(p.baseQty*scale)))

		prices := make(map[models.Vendor]float64, len(models.VendorPriority))
		for i, v := range models.VendorPriority {
			prices[v] = p.prices[i]
			totals[string(v)] += float64(qty) * p.prices[i]
		}

		products = append(products, models.FallbackProduct{
			Name:    p.name,
			Unit:    p.unit,
			BaseQty: p.baseQty,
			Qty:     qty,
			Prices:  prices,
		})
	}

	return models.SourceData{
		Mode:         models.SourceModeFallback,
		VendorTotals: totals,
		Products:     products,
	}
}
