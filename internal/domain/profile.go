package domain

import "fmt"

// Sex is the biological sex used to select the BMR formula.
type Sex string

// Possible sex values.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// GoalKind is the user's primary objective, chosen at onboarding. It drives
// the calorie-goal adjustment and the heuristic target weight.
type GoalKind string

// Possible goal kinds.
const (
	GoalLoseWeight    GoalKind = "lose_weight"
	GoalGainWeight    GoalKind = "gain_weight"
	GoalGainMuscle    GoalKind = "gain_muscle"
	GoalImproveHealth GoalKind = "improve_health"
	GoalOther         GoalKind = "other"
)

// UserProfile holds the biometric data of the current user session. It is a
// singleton with an explicit load/save lifecycle: loaded at startup and
// persisted on every mutation. BMI and the weight delta to target are derived
// on read, never stored.
type UserProfile struct {
	Name            string  `json:"name"`
	HeightCm        float64 `json:"height_cm"`
	CurrentWeightKg float64 `json:"current_weight_kg"`
	TargetWeightKg  float64 `json:"target_weight_kg"`
	AgeYears        float64 `json:"age_years"`
	BiologicalSex   Sex     `json:"biological_sex"`
}

// Validate checks that the profile's biometric fields are positive and the
// sex is one of the defined values.
func (p *UserProfile) Validate() error {
	if p.HeightCm <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	if p.CurrentWeightKg <= 0 {
		return fmt.Errorf("%w: current weight must be positive", ErrInvalidInput)
	}
	if p.TargetWeightKg <= 0 {
		return fmt.Errorf("%w: target weight must be positive", ErrInvalidInput)
	}
	if p.AgeYears <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}
	switch p.BiologicalSex {
	case SexMale, SexFemale, SexOther:
	default:
		return fmt.Errorf("%w: unknown biological sex %q", ErrInvalidInput, p.BiologicalSex)
	}
	return nil
}

// WeightDeltaToTarget returns how many kilograms separate the current weight
// from the target. Positive means weight to lose, negative weight to gain.
func (p *UserProfile) WeightDeltaToTarget() float64 {
	return p.CurrentWeightKg - p.TargetWeightKg
}

// CalorieGoal is the user's daily calorie target. It defaults to a
// BMR-derived value computed once at onboarding and is overwritable at any
// time by explicit user edit; it is never recomputed automatically afterward.
type CalorieGoal int

// Valid reports whether the goal can be used for aggregation arithmetic.
func (g CalorieGoal) Valid() bool {
	return g > 0
}
