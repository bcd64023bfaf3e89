// Package pricing resolves concrete prices for weight-based products,
// which are priced per 100g rather than per unit.
package pricing

import (
	"errors"
	"math"
)

const (
	UnitGram = "g"
	UnitKg   = "kg"

	MinGrams  = 50
	MaxGrams  = 5000
	StepGrams = 50

	MinKg  = 0.5
	MaxKg  = 10
	StepKg = 0.5
)

var ErrInvalidUnit = errors.New("unit must be g or kg")

func ValidUnit(unit string) bool {
	return unit == UnitGram || unit == UnitKg
}

// Grams normalizes a quantity to grams.
func Grams(qty float64, unit string) float64 {
	if unit == UnitKg {
		return qty * 1000
	}
	return qty
}

// Resolve computes the total price for the chosen quantity from the
// per-100g reference, rounded to 2 decimals.
func Resolve(pricePer100g, qty float64, unit string) (float64, error) {
	if !ValidUnit(unit) {
		return 0, ErrInvalidUnit
	}
	return round2(Grams(qty, unit) / 100 * pricePer100g), nil
}

// Clamp snaps a quantity onto the selectable grid: grams in [50,5000]
// step 50, kilograms in [0.5,10] step 0.5.
func Clamp(qty float64, unit string) float64 {
	if unit == UnitKg {
		return snap(qty, StepKg, MinKg, MaxKg)
	}
	return snap(qty, StepGrams, MinGrams, MaxGrams)
}

// ToggleUnit rescales the numeric quantity to the other unit without
// changing the physical quantity it represents. Grams become kilograms
// rounded to 2 decimals; kilograms become grams rounded to the nearest
// integer.
func ToggleUnit(qty float64, unit string) (float64, string) {
	if unit == UnitKg {
		return math.Round(qty * 1000), UnitGram
	}
	return round2(qty / 1000), UnitKg
}

func snap(qty, step, min, max float64) float64 {
	v := math.Round(qty/step) * step
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return round2(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
