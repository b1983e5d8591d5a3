// Package biometrics provides the pure calculation functions behind the
// dashboard metrics: Harris-Benedict BMR, the derived daily calorie goal,
// the heuristic target weight, BMI with its category, and weight-loss
// progress. Nothing here holds state or touches persistence.
package biometrics

import (
	"fmt"
	"math"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// DefaultActivityFactor is the moderate-activity multiplier applied to BMR
// when deriving the calorie goal at onboarding.
const DefaultActivityFactor = 1.55

// BMICategory labels the standard BMI ranges.
type BMICategory string

// BMI categories.
const (
	CategoryUnderweight BMICategory = "underweight"
	CategoryNormal      BMICategory = "normal"
	CategoryOverweight  BMICategory = "overweight"
	CategoryObesity     BMICategory = "obesity"
)

// BMR estimates the basal metabolic rate in kcal/day using the
// Harris-Benedict formulas. The male formula applies to SexMale; female and
// other use the female coefficients.
func BMR(sex domain.Sex, weightKg, heightCm, ageYears float64) float64 {
	if sex == domain.SexMale {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*ageYears
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*ageYears
}

// CalorieGoal derives a daily calorie target from a BMR value: the BMR is
// scaled by the activity factor, then adjusted for the goal kind (-500 kcal
// to lose weight, +300 to gain weight or muscle, unchanged otherwise) and
// rounded to the nearest integer. A non-positive activityFactor falls back
// to DefaultActivityFactor.
func CalorieGoal(bmr float64, activityFactor float64, goal domain.GoalKind) domain.CalorieGoal {
	if activityFactor <= 0 {
		activityFactor = DefaultActivityFactor
	}

	total := bmr * activityFactor
	switch goal {
	case domain.GoalLoseWeight:
		total -= 500
	case domain.GoalGainWeight, domain.GoalGainMuscle:
		total += 300
	}

	return domain.CalorieGoal(math.Round(total))
}

// TargetWeight returns the heuristic default target weight for a goal kind:
// 90% of the current weight to lose, 105% to gain weight or muscle, unchanged
// otherwise. Rounded to one decimal. The user may override it afterward.
func TargetWeight(currentWeightKg float64, goal domain.GoalKind) float64 {
	target := currentWeightKg
	switch goal {
	case domain.GoalLoseWeight:
		target = currentWeightKg * 0.9
	case domain.GoalGainWeight, domain.GoalGainMuscle:
		target = currentWeightKg * 1.05
	}
	return math.Round(target*10) / 10
}

// BMI computes the body mass index from weight in kilograms and height in
// centimeters. Returns domain.ErrInvalidInput if either is non-positive.
func BMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("%w: weight and height must be positive", domain.ErrInvalidInput)
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// Categorize maps a BMI value onto its standard category.
func Categorize(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObesity
	}
}

// ProgressPercent returns how far the user has moved from the initial weight
// toward the target, as a percentage. Returns 0 when initial equals target.
// The value is deliberately not clamped to [0, 100]: overshooting the target
// and regressing past the start are both representable.
func ProgressPercent(initialWeightKg, currentWeightKg, targetWeightKg float64) float64 {
	if initialWeightKg == targetWeightKg {
		return 0
	}
	return (initialWeightKg - currentWeightKg) / (initialWeightKg - targetWeightKg) * 100
}
