package planner

import (
	"math"
	"sort"
	"strings"

	"github.com/foxxcyber/breakfast-club/internal/models"
)

// minimumCost keeps a collapsed ratio from rendering as a free shop
const minimumCost = 0.01

// vendorLabels lists the exact labels checked per vendor, most preferred first.
// Storefront display labels win over bare canonical keys.
var vendorLabels = map[models.Vendor][]string{
	models.VendorPaknSave:  {"Pak'nSave", "Pak’nSave", "PAK'nSAVE", "paknsave"},
	models.VendorCountdown: {"Countdown", "Woolworths", "countdown"},
	models.VendorNewWorld:  {"New World", "newworld"},
}

// vendorAliases maps folded labels to canonical vendors
var vendorAliases = []struct {
	folded string
	vendor models.Vendor
}{
	{"paknsave", models.VendorPaknSave},
	{"packnsave", models.VendorPaknSave},
	{"countdown", models.VendorCountdown},
	{"woolworths", models.VendorCountdown},
	{"newworld", models.VendorNewWorld},
	// Generic slot keys used by sources that do not name the storefront
	{"vendora", models.VendorPaknSave},
	{"vendorb", models.VendorCountdown},
	{"vendorc", models.VendorNewWorld},
}

// foldVendorLabel lowercases a label and strips apostrophes, spaces and separators
func foldVendorLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		switch r {
		case '\'', '’', '‘', '`', ' ', '-', '_', '.', '&':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CanonicalVendor resolves a source-specific label to a canonical vendor
func CanonicalVendor(label string) (models.Vendor, bool) {
	folded := foldVendorLabel(label)
	if folded == "" {
		return "", false
	}
	for _, alias := range vendorAliases {
		if folded == alias.folded {
			return alias.vendor, true
		}
	}
	// Labels such as "New World Metro" keep a suffix after folding
	for _, alias := range vendorAliases {
		if strings.HasPrefix(folded, alias.folded) {
			return alias.vendor, true
		}
	}
	return "", false
}

// NormalizeVendorTotals maps raw vendor labels to canonical totals. Vendors
// without a usable quote default to 0 and are listed in Missing.
func NormalizeVendorTotals(raw map[string]float64) models.VendorQuotes {
	quotes := models.VendorQuotes{
		Totals: make(map[models.Vendor]float64, len(models.VendorPriority)),
	}

	// Sorted so that fuzzy matches are resolved the same way every time
	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, vendor := range models.VendorPriority {
		total, found := lookupVendorTotal(vendor, raw, labels)
		if !found || !validTotal(total) {
			quotes.Totals[vendor] = 0
			quotes.Missing = append(quotes.Missing, vendor)
			continue
		}
		quotes.Totals[vendor] = total
	}

	return quotes
}

func lookupVendorTotal(vendor models.Vendor, raw map[string]float64, sortedLabels []string) (float64, bool) {
	for _, label := range vendorLabels[vendor] {
		if total, ok := raw[label]; ok && validTotal(total) {
			return total, true
		}
	}
	for _, label := range sortedLabels {
		if v, ok := CanonicalVendor(label); ok && v == vendor {
			if total := raw[label]; validTotal(total) {
				return total, true
			}
		}
	}
	return 0, false
}

func validTotal(total float64) bool {
	return !math.IsNaN(total) && !math.IsInf(total, 0) && total >= 0
}

// SelectCheapest returns the vendor with the lowest total. Ties go to the
// earliest vendor in models.VendorPriority.
func SelectCheapest(quotes models.VendorQuotes) (models.Vendor, float64) {
	cheapest := models.VendorPriority[0]
	best := quotes.Total(cheapest)

	for _, vendor := range models.VendorPriority[1:] {
		if total := quotes.Total(vendor); total < best {
			cheapest = vendor
			best = total
		}
	}
	return cheapest, best
}

// AggregateCost selects the cheapest vendor and scales its total by the
// fraction of the plan still to be bought.
func AggregateCost(quotes models.VendorQuotes, toBuyRatio float64) models.VendorSelection {
	cheapest, rawTotal := SelectCheapest(quotes)

	missing := make(map[models.Vendor]bool, len(quotes.Missing))
	for _, v := range quotes.Missing {
		missing[v] = true
	}

	comparison := make([]models.VendorComparison, 0, len(models.VendorPriority))
	for _, vendor := range models.VendorPriority {
		comparison = append(comparison, models.VendorComparison{
			Vendor:      vendor,
			DisplayName: vendor.DisplayName(),
			RawTotal:    quotes.Total(vendor),
			Missing:     missing[vendor],
			IsCheapest:  vendor == cheapest,
		})
	}

	return models.VendorSelection{
		CheapestVendor: cheapest,
		CheapestName:   cheapest.DisplayName(),
		RawTotal:       rawTotal,
		AdjustedCost:   math.Max(rawTotal*toBuyRatio, minimumCost),
		Comparison:     comparison,
	}
}
