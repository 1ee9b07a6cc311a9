package models

// LeftoverEntry is a reported leftover for one ingredient.
// ReportedQty is nil when the user never entered a value.
type LeftoverEntry struct {
	IngredientKey string   `json:"ingredient_key"`
	Unit          Unit     `json:"unit"`
	ReportedQty   *float64 `json:"reported_qty"`
}

// UpdateLeftoverRequest is the request body for setting a leftover value
type UpdateLeftoverRequest struct {
	Quantity interface{} `json:"quantity"`
}

// ParsedLeftoverLine is a line recognised on a scanned stock-take sheet
type ParsedLeftoverLine struct {
	LineNumber    int     `json:"line_number"`
	RawText       string  `json:"raw_text"`
	IngredientKey string  `json:"ingredient_key"`
	Quantity      float64 `json:"quantity"`
}

// LeftoverScanResult is returned after scanning a stock-take sheet
type LeftoverScanResult struct {
	Applied   []ParsedLeftoverLine `json:"applied"`
	Unmatched []string             `json:"unmatched,omitempty"`
}
