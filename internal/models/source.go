package models

// SourceMode tags where vendor data came from
type SourceMode string

const (
	SourceModeLive     SourceMode = "live"
	SourceModeFallback SourceMode = "fallback"
	SourceModePending  SourceMode = "pending"
)

// Disclosure returns the banner text shown for the mode
func (m SourceMode) Disclosure() string {
	switch m {
	case SourceModeLive:
		return "Live supermarket data loaded successfully"
	case SourceModeFallback:
		return "Using demo data — live supermarket API unavailable"
	default:
		return "Loading supermarket data"
	}
}

// FallbackProduct is one line of the synthetic demo dataset
type FallbackProduct struct {
	Name    string             `json:"name"`
	Unit    string             `json:"unit"`
	BaseQty float64            `json:"base_qty"`
	Qty     int                `json:"qty"`
	Prices  map[Vendor]float64 `json:"prices"`
}

// SourceData is the normalized payload the data source adapter hands to the planner
type SourceData struct {
	Mode         SourceMode         `json:"mode"`
	VendorTotals map[string]float64 `json:"vendor_totals"`         // raw labels as received
	Ingredients  map[string]float64 `json:"ingredients,omitempty"` // merged live item counts
	Cheapest     string             `json:"cheapest,omitempty"`    // upstream's own pick, advisory only
	Products     []FallbackProduct  `json:"products,omitempty"`
}
