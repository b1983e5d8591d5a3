package domain

import (
	"fmt"
	"math"
)

// totalsTolerance is the maximum allowed drift between an aggregate total and
// the sum of its per-item values. Recognition services round item values
// independently, so exact equality cannot be required.
const totalsTolerance = 0.1

// FoodItem is a single recognized food with its estimated nutrition values.
// Names are specific ("grilled chicken breast"), never generic placeholders;
// the recognition contract itemizes every distinct food and each salad or
// side component separately.
type FoodItem struct {
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	CarbsGrams   float64 `json:"carbs"`
	ProteinGrams float64 `json:"protein"`
	FatGrams     float64 `json:"fat"`
	WeightGrams  float64 `json:"weight"`
}

// Validate checks that the food item has a name and no negative values.
func (f FoodItem) Validate() error {
	if f.Name == "" {
		return ErrEmptyFoodName
	}
	if f.Calories < 0 || f.CarbsGrams < 0 || f.ProteinGrams < 0 ||
		f.FatGrams < 0 || f.WeightGrams < 0 {
		return fmt.Errorf("%w: %q", ErrNegativeNutrient, f.Name)
	}
	return nil
}

// AnalysisResult is the canonical outcome of a meal recognition call: the
// itemized foods plus the four aggregate totals the aggregator sums.
type AnalysisResult struct {
	Foods         []FoodItem `json:"foods"`
	TotalCalories float64    `json:"totalCalories"`
	TotalCarbs    float64    `json:"totalCarbs"`
	TotalProtein  float64    `json:"totalProtein"`
	TotalFat      float64    `json:"totalFat"`
}

// Validate checks every food item and enforces the reconciliation invariant:
// each aggregate total must equal the sum of the corresponding per-item
// fields within the rounding tolerance. The aggregator relies on this holding
// for every analyzed entry.
func (r *AnalysisResult) Validate() error {
	if len(r.Foods) == 0 {
		return fmt.Errorf("%w: no foods recognized", ErrInvalidInput)
	}

	var calories, carbs, protein, fat float64
	for _, f := range r.Foods {
		if err := f.Validate(); err != nil {
			return err
		}
		calories += f.Calories
		carbs += f.CarbsGrams
		protein += f.ProteinGrams
		fat += f.FatGrams
	}

	for _, check := range []struct {
		name  string
		total float64
		sum   float64
	}{
		{"calories", r.TotalCalories, calories},
		{"carbs", r.TotalCarbs, carbs},
		{"protein", r.TotalProtein, protein},
		{"fat", r.TotalFat, fat},
	} {
		if math.Abs(check.total-check.sum) > totalsTolerance {
			return fmt.Errorf("%w: %s total %.2f, item sum %.2f",
				ErrTotalsMismatch, check.name, check.total, check.sum)
		}
	}

	return nil
}
