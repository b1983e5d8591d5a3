package domain

import (
	"errors"
	"testing"
)

func validResult() *AnalysisResult {
	return &AnalysisResult{
		Foods: []FoodItem{
			{Name: "white rice", Calories: 130, CarbsGrams: 28, ProteinGrams: 2.7, FatGrams: 0.3, WeightGrams: 100},
			{Name: "black beans", Calories: 77, CarbsGrams: 14, ProteinGrams: 4.5, FatGrams: 0.5, WeightGrams: 80},
		},
		TotalCalories: 207,
		TotalCarbs:    42,
		TotalProtein:  7.2,
		TotalFat:      0.8,
	}
}

func TestAnalysisResultReconciliation(t *testing.T) {
	t.Parallel()

	result := validResult()
	if err := result.Validate(); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}

	// Small rounding drift within the tolerance is accepted.
	result.TotalProtein = 7.25
	if err := result.Validate(); err != nil {
		t.Errorf("expected drift within tolerance to pass, got %v", err)
	}

	// Anything beyond it is a malformed payload.
	result.TotalProtein = 9
	if err := result.Validate(); !errors.Is(err, ErrTotalsMismatch) {
		t.Errorf("expected ErrTotalsMismatch, got %v", err)
	}
}

func TestAnalysisResultRejectsEmptyFoods(t *testing.T) {
	t.Parallel()

	result := &AnalysisResult{}
	if err := result.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty foods, got %v", err)
	}
}

func TestFoodItemValidate(t *testing.T) {
	t.Parallel()

	item := FoodItem{Name: "grilled chicken breast", Calories: 165, ProteinGrams: 31, FatGrams: 3.6, WeightGrams: 100}
	if err := item.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	item.Name = ""
	if err := item.Validate(); !errors.Is(err, ErrEmptyFoodName) {
		t.Errorf("expected ErrEmptyFoodName, got %v", err)
	}

	item.Name = "grilled chicken breast"
	item.FatGrams = -1
	if err := item.Validate(); !errors.Is(err, ErrNegativeNutrient) {
		t.Errorf("expected ErrNegativeNutrient, got %v", err)
	}
}

func TestWeightObservation(t *testing.T) {
	t.Parallel()

	obs, err := NewWeightObservation(Day("2025-06-01"), 72.4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if obs.Kilograms != 72.4 {
		t.Errorf("expected 72.4 kg, got %v", obs.Kilograms)
	}

	if _, err := NewWeightObservation(Day("2025-06-01"), 0); !errors.Is(err, ErrNonPositiveWeight) {
		t.Errorf("expected ErrNonPositiveWeight, got %v", err)
	}
	if _, err := NewWeightObservation(Day("2025-06-01"), -3); !errors.Is(err, ErrNonPositiveWeight) {
		t.Errorf("expected ErrNonPositiveWeight, got %v", err)
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()

	day, err := ParseDay("2025-02-28")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if day != Day("2025-02-28") {
		t.Errorf("unexpected day %s", day)
	}

	if _, err := ParseDay("28/02/2025"); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay, got %v", err)
	}
	if _, err := ParseDay("2025-02-30"); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("expected ErrInvalidDay for impossible date, got %v", err)
	}
}
