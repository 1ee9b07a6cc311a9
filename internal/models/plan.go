package models

// ShoppingPlanItem is the netted requirement for one ingredient
type ShoppingPlanItem struct {
	Ingredient       string  `json:"ingredient"`
	Unit             Unit    `json:"unit"`
	UnitLabel        string  `json:"unit_label"`
	RequiredQty      float64 `json:"required_qty"`
	LeftoverQty      float64 `json:"leftover_qty"`
	LeftoverReported bool    `json:"leftover_reported"`
	ToBuyQty         float64 `json:"to_buy_qty"`
	DisplayRequired  float64 `json:"display_required"`
	DisplayToBuy     float64 `json:"display_to_buy"`
}

// CalorieEstimate is the nutrition section of a plan
type CalorieEstimate struct {
	OptimalCalories         int     `json:"optimal_calories"`
	EstimatedActualCalories int     `json:"estimated_actual_calories"`
	RawActualCalories       int     `json:"raw_actual_calories"` // unclamped, may be negative
	FillPercent             float64 `json:"fill_percent"`
}

// AdvisoryItem is an item count reported by the live feed, shown alongside the plan
type AdvisoryItem struct {
	Key       string  `json:"key"`
	UnitLabel string  `json:"unit_label"`
	Qty       float64 `json:"qty"`
	RoundedTo int     `json:"rounded"`
}

// Plan is the aggregate produced on every recomputation
type Plan struct {
	Attendance              Attendance         `json:"attendance"`
	TotalChildren           int                `json:"total_children"`
	Items                   []ShoppingPlanItem `json:"items"`
	ToBuyRatio              float64            `json:"to_buy_ratio"`
	LeftoverRatio           float64            `json:"leftover_ratio"`
	CheapestVendor          Vendor             `json:"cheapest_vendor"`
	CheapestName            string             `json:"cheapest_name"`
	AdjustedCost            float64            `json:"adjusted_cost"`
	Vendors                 []VendorComparison `json:"vendors"`
	OptimalCalories         int                `json:"optimal_calories"`
	EstimatedActualCalories int                `json:"estimated_actual_calories"`
	Calories                CalorieEstimate    `json:"calories"`
	Mode                    SourceMode         `json:"mode"`
	ModeMessage             string             `json:"mode_message"`
	FeedItems               []AdvisoryItem     `json:"feed_items,omitempty"`
}
