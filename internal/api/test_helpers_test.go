package api

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/phrazzld/nutrisnap/internal/biometrics"
	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/nutrition"
	"github.com/phrazzld/nutrisnap/internal/service"
)

// fakeWeightService implements WeightLedgerService in memory.
type fakeWeightService struct {
	observations []*domain.WeightObservation
}

func (s *fakeWeightService) Record(_ context.Context, observedOn domain.Day, kilograms float64) (*domain.WeightObservation, error) {
	observation, err := domain.NewWeightObservation(observedOn, kilograms)
	if err != nil {
		return nil, err
	}
	s.observations = append(s.observations, observation)
	return observation, nil
}

func (s *fakeWeightService) Delete(_ context.Context, id uuid.UUID) error {
	for i, observation := range s.observations {
		if observation.ID == id {
			s.observations = append(s.observations[:i], s.observations[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", service.ErrObservationNotFound, id)
}

func (s *fakeWeightService) Recent(n int) []*domain.WeightObservation {
	sorted := make([]*domain.WeightObservation, len(s.observations))
	copy(sorted, s.observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedOn.Before(sorted[j].ObservedOn)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// fakeProfileService implements ProfileManager in memory.
type fakeProfileService struct {
	profile *domain.UserProfile
	goal    domain.CalorieGoal
}

func (s *fakeProfileService) Onboarded() bool {
	return s.profile != nil
}

func (s *fakeProfileService) Profile() *domain.UserProfile {
	if s.profile == nil {
		return nil
	}
	copied := *s.profile
	return &copied
}

func (s *fakeProfileService) CompleteOnboarding(_ context.Context, draft domain.UserProfile, goalKind domain.GoalKind) (*domain.UserProfile, domain.CalorieGoal, error) {
	if s.profile != nil {
		return nil, 0, service.ErrAlreadyOnboarded
	}
	draft.TargetWeightKg = biometrics.TargetWeight(draft.CurrentWeightKg, goalKind)
	if err := draft.Validate(); err != nil {
		return nil, 0, err
	}
	bmr := biometrics.BMR(draft.BiologicalSex, draft.CurrentWeightKg, draft.HeightCm, draft.AgeYears)
	s.profile = &draft
	s.goal = biometrics.CalorieGoal(bmr, biometrics.DefaultActivityFactor, goalKind)
	return s.Profile(), s.goal, nil
}

func (s *fakeProfileService) UpdateProfile(_ context.Context, profile domain.UserProfile) error {
	if s.profile == nil {
		return service.ErrNotOnboarded
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	s.profile = &profile
	return nil
}

func (s *fakeProfileService) CalorieGoal() domain.CalorieGoal {
	if !s.goal.Valid() {
		return 1500
	}
	return s.goal
}

func (s *fakeProfileService) SetCalorieGoal(_ context.Context, goal domain.CalorieGoal) error {
	if !goal.Valid() {
		return fmt.Errorf("%w: calorie goal must be positive", domain.ErrInvalidConfiguration)
	}
	s.goal = goal
	return nil
}

func (s *fakeProfileService) BMI() (float64, biometrics.BMICategory, error) {
	if s.profile == nil {
		return 0, "", service.ErrNotOnboarded
	}
	bmi, err := biometrics.BMI(s.profile.CurrentWeightKg, s.profile.HeightCm)
	if err != nil {
		return 0, "", err
	}
	return bmi, biometrics.Categorize(bmi), nil
}

func (s *fakeProfileService) Progress(latestWeightKg float64) (float64, error) {
	if s.profile == nil {
		return 0, service.ErrNotOnboarded
	}
	current := latestWeightKg
	if current <= 0 {
		current = s.profile.CurrentWeightKg
	}
	return biometrics.ProgressPercent(s.profile.CurrentWeightKg, current, s.profile.TargetWeightKg), nil
}

// fakeNutritionReader implements NutritionReader with canned totals.
type fakeNutritionReader struct {
	totals nutrition.DailyTotals
}

func (r *fakeNutritionReader) TotalsFor(day domain.Day) (nutrition.DailyTotals, error) {
	if err := day.Validate(); err != nil {
		return nutrition.DailyTotals{}, err
	}
	totals := r.totals
	totals.Day = day
	return totals, nil
}

func (r *fakeNutritionReader) RemainingCalories(day domain.Day, goal domain.CalorieGoal) (float64, error) {
	if !goal.Valid() {
		return 0, fmt.Errorf("%w: calorie goal must be positive", domain.ErrInvalidConfiguration)
	}
	totals, err := r.TotalsFor(day)
	if err != nil {
		return 0, err
	}
	return float64(goal) - totals.Calories, nil
}

func (r *fakeNutritionReader) ProgressFraction(day domain.Day, goal domain.CalorieGoal) (float64, error) {
	if !goal.Valid() {
		return 0, fmt.Errorf("%w: calorie goal must be positive", domain.ErrInvalidConfiguration)
	}
	totals, err := r.TotalsFor(day)
	if err != nil {
		return 0, err
	}
	return totals.Calories / float64(goal), nil
}
