package models

import (
	"math"
)

// Unit is the measuring unit of an ingredient quantity
type Unit string

const (
	UnitLiters    Unit = "liters"
	UnitKilograms Unit = "kilograms"
	UnitGrams     Unit = "grams"
	UnitPieces    Unit = "pieces"
	UnitUnits     Unit = "units"
	UnitEggs      Unit = "eggs"
)

// Label returns the short label shown next to quantities
func (u Unit) Label() string {
	switch u {
	case UnitLiters:
		return "L"
	case UnitKilograms:
		return "kg"
	case UnitGrams:
		return "g"
	case UnitPieces:
		return "pieces"
	case UnitUnits:
		return "units"
	case UnitEggs:
		return "eggs"
	default:
		return string(u)
	}
}

// Ingredient keys in plan order
const (
	IngredientMilk         = "milk"
	IngredientFruit        = "fruit"
	IngredientYogurt       = "yogurt"
	IngredientOats         = "oats"
	IngredientBread        = "bread"
	IngredientMilo         = "milo"
	IngredientSugar        = "sugar"
	IngredientFlour        = "flour"
	IngredientEggs         = "eggs"
	IngredientButter       = "butter"
	IngredientBakingPowder = "baking_powder"
)

// IngredientOrder is the fixed display and iteration order of planned ingredients
var IngredientOrder = []string{
	IngredientMilk,
	IngredientFruit,
	IngredientYogurt,
	IngredientOats,
	IngredientBread,
	IngredientMilo,
	IngredientSugar,
	IngredientFlour,
	IngredientEggs,
	IngredientButter,
	IngredientBakingPowder,
}

// IngredientUnits maps every planned ingredient to its unit
var IngredientUnits = map[string]Unit{
	IngredientMilk:         UnitLiters,
	IngredientFruit:        UnitPieces,
	IngredientYogurt:       UnitKilograms,
	IngredientOats:         UnitKilograms,
	IngredientBread:        UnitUnits,
	IngredientMilo:         UnitGrams,
	IngredientSugar:        UnitKilograms,
	IngredientFlour:        UnitKilograms,
	IngredientEggs:         UnitEggs,
	IngredientButter:       UnitGrams,
	IngredientBakingPowder: UnitGrams,
}

// IsKnownIngredient reports whether key names a planned ingredient
func IsKnownIngredient(key string) bool {
	_, ok := IngredientUnits[key]
	return ok
}

// Ingredient is a single required quantity in a plan
type Ingredient struct {
	Key         string  `json:"key"`
	Unit        Unit    `json:"unit"`
	RequiredQty float64 `json:"required_qty"`
}

// WholeUnitIngredient reports whether the ingredient is counted in whole units
func WholeUnitIngredient(key string) bool {
	return key == IngredientEggs || key == IngredientBread
}

// RoundForDisplay rounds qty the way the ingredient is shown: whole units for
// eggs and bread, two decimals for everything else.
func RoundForDisplay(key string, qty float64) float64 {
	if WholeUnitIngredient(key) {
		return math.Round(qty)
	}
	return math.Round(qty*100) / 100
}

// DisplayQty returns the rounded required quantity
func (i Ingredient) DisplayQty() float64 {
	return RoundForDisplay(i.Key, i.RequiredQty)
}
