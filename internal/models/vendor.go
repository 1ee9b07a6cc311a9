package models

// Vendor is a canonical supermarket key
type Vendor string

const (
	VendorPaknSave  Vendor = "paknsave"
	VendorCountdown Vendor = "countdown"
	VendorNewWorld  Vendor = "newworld"
)

// VendorPriority is the tie-break order used when quotes are equal
var VendorPriority = []Vendor{VendorPaknSave, VendorCountdown, VendorNewWorld}

// DisplayName returns the storefront name of the vendor
func (v Vendor) DisplayName() string {
	switch v {
	case VendorPaknSave:
		return "Pak’nSave"
	case VendorCountdown:
		return "Countdown"
	case VendorNewWorld:
		return "New World"
	default:
		return string(v)
	}
}

// VendorQuotes holds normalized vendor totals
type VendorQuotes struct {
	Totals  map[Vendor]float64 `json:"totals"`
	Missing []Vendor           `json:"missing,omitempty"` // vendors with no usable quote, defaulted to 0
}

// Total returns the quoted total for v, 0 when missing
func (q VendorQuotes) Total(v Vendor) float64 {
	return q.Totals[v]
}

// VendorComparison is one column of the vendor comparison
type VendorComparison struct {
	Vendor      Vendor  `json:"vendor"`
	DisplayName string  `json:"display_name"`
	RawTotal    float64 `json:"raw_total"`
	Missing     bool    `json:"missing"`
	IsCheapest  bool    `json:"is_cheapest"`
}

// VendorSelection is the outcome of cost aggregation
type VendorSelection struct {
	CheapestVendor Vendor             `json:"cheapest_vendor"`
	CheapestName   string             `json:"cheapest_name"`
	RawTotal       float64            `json:"raw_total"`
	AdjustedCost   float64            `json:"adjusted_cost"`
	Comparison     []VendorComparison `json:"comparison"`
}
