package recognition

import "github.com/phrazzld/nutrisnap/internal/domain"

// FallbackResult returns the fixed, nutritionally plausible analysis the meal
// entry store substitutes when recognition fails: a representative
// Brazilian-style plate of rice, beans, grilled chicken, salad components,
// fries, and an olive-oil dressing. Trading accuracy for continuity here is a
// deliberate product decision; a failed recognition still yields a populated
// meal card instead of an error state.
//
// Each call returns a fresh copy so callers can never share or mutate the
// canonical values.
func FallbackResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Foods: []domain.FoodItem{
			{Name: "Cooked white rice", Calories: 130, CarbsGrams: 28, ProteinGrams: 2.7, FatGrams: 0.3, WeightGrams: 100},
			{Name: "Cooked black beans", Calories: 77, CarbsGrams: 14, ProteinGrams: 4.5, FatGrams: 0.5, WeightGrams: 80},
			{Name: "Grilled chicken breast", Calories: 165, CarbsGrams: 0, ProteinGrams: 31, FatGrams: 3.6, WeightGrams: 100},
			{Name: "Curly lettuce", Calories: 8, CarbsGrams: 1.5, ProteinGrams: 0.6, FatGrams: 0.1, WeightGrams: 50},
			{Name: "Cherry tomato", Calories: 9, CarbsGrams: 2, ProteinGrams: 0.4, FatGrams: 0.1, WeightGrams: 50},
			{Name: "Grated carrot", Calories: 20, CarbsGrams: 4.7, ProteinGrams: 0.5, FatGrams: 0.1, WeightGrams: 50},
			{Name: "Sliced cucumber", Calories: 8, CarbsGrams: 1.9, ProteinGrams: 0.3, FatGrams: 0.1, WeightGrams: 50},
			{Name: "French fries", Calories: 312, CarbsGrams: 41, ProteinGrams: 3.4, FatGrams: 15, WeightGrams: 100},
			{Name: "Olive oil dressing", Calories: 45, CarbsGrams: 0, ProteinGrams: 0, FatGrams: 5, WeightGrams: 5},
		},
		TotalCalories: 774,
		TotalCarbs:    93.1,
		TotalProtein:  43.4,
		TotalFat:      24.8,
	}
}
