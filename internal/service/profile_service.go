package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/nutrisnap/internal/biometrics"
	"github.com/phrazzld/nutrisnap/internal/domain"
)

// defaultCalorieGoal is shown before onboarding completes, so aggregation
// screens have something to divide by.
const defaultCalorieGoal domain.CalorieGoal = 1500

// ProfileStore persists the user profile singleton.
type ProfileStore interface {
	Load(ctx context.Context) (*domain.UserProfile, error)
	Save(ctx context.Context, profile *domain.UserProfile) error
}

// GoalStore persists the calorie goal scalar.
type GoalStore interface {
	Load(ctx context.Context) (domain.CalorieGoal, error)
	Save(ctx context.Context, goal domain.CalorieGoal) error
}

// ProfileService owns the user profile and calorie goal singletons. Both are
// loaded once at startup and persisted on every mutation.
//
// The calorie goal is computed from the profile exactly once, at onboarding
// completion. Later profile edits never recompute it; the user overrides it
// explicitly through SetCalorieGoal.
type ProfileService struct {
	mu      sync.Mutex
	profile *domain.UserProfile
	goal    domain.CalorieGoal

	profiles ProfileStore
	goals    GoalStore
	logger   *slog.Logger
}

// NewProfileService creates a profile service.
func NewProfileService(profiles ProfileStore, goals GoalStore, logger *slog.Logger) (*ProfileService, error) {
	if profiles == nil {
		return nil, fmt.Errorf("%w: profile store", ErrNilDependency)
	}
	if goals == nil {
		return nil, fmt.Errorf("%w: goal store", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	return &ProfileService{
		profiles: profiles,
		goals:    goals,
		logger:   logger.With("component", "profile_service"),
	}, nil
}

// Load restores the persisted profile and goal. A nil profile means
// onboarding has never completed.
func (s *ProfileService) Load(ctx context.Context) error {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return err
	}
	goal, err := s.goals.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = profile
	s.goal = goal
	s.mu.Unlock()

	s.logger.Info("profile loaded", "onboarded", profile != nil, "calorie_goal", goal)
	return nil
}

// Onboarded reports whether onboarding has completed.
func (s *ProfileService) Onboarded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile != nil
}

// Profile returns a copy of the current profile, or nil before onboarding.
func (s *ProfileService) Profile() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	copied := *s.profile
	return &copied
}

// CompleteOnboarding establishes the profile and derives its initial targets:
// the heuristic target weight and the BMR-based calorie goal for the given
// objective. The draft's TargetWeightKg is ignored; onboarding always
// computes it. Calling again after onboarding fails with ErrAlreadyOnboarded.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, draft domain.UserProfile, goalKind domain.GoalKind) (*domain.UserProfile, domain.CalorieGoal, error) {
	draft.TargetWeightKg = biometrics.TargetWeight(draft.CurrentWeightKg, goalKind)
	if err := draft.Validate(); err != nil {
		return nil, 0, err
	}

	bmr := biometrics.BMR(draft.BiologicalSex, draft.CurrentWeightKg, draft.HeightCm, draft.AgeYears)
	goal := biometrics.CalorieGoal(bmr, biometrics.DefaultActivityFactor, goalKind)

	s.mu.Lock()
	if s.profile != nil {
		s.mu.Unlock()
		return nil, 0, ErrAlreadyOnboarded
	}
	if err := s.profiles.Save(ctx, &draft); err != nil {
		s.mu.Unlock()
		return nil, 0, err
	}
	if err := s.goals.Save(ctx, goal); err != nil {
		s.mu.Unlock()
		return nil, 0, err
	}
	s.profile = &draft
	s.goal = goal
	s.mu.Unlock()

	s.logger.Info("onboarding completed",
		"goal_kind", goalKind,
		"target_weight_kg", draft.TargetWeightKg,
		"calorie_goal", goal)

	copied := draft
	return &copied, goal, nil
}

// UpdateProfile overwrites the profile with edited values. The calorie goal
// is left untouched.
func (s *ProfileService) UpdateProfile(ctx context.Context, profile domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return ErrNotOnboarded
	}
	if err := s.profiles.Save(ctx, &profile); err != nil {
		return err
	}
	s.profile = &profile

	s.logger.Info("profile updated")
	return nil
}

// CalorieGoal returns the effective daily goal: the stored value when set,
// the pre-onboarding default otherwise.
func (s *ProfileService) CalorieGoal() domain.CalorieGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.goal.Valid() {
		return defaultCalorieGoal
	}
	return s.goal
}

// SetCalorieGoal overrides the daily goal with an explicit user edit.
func (s *ProfileService) SetCalorieGoal(ctx context.Context, goal domain.CalorieGoal) error {
	if !goal.Valid() {
		return fmt.Errorf("%w: calorie goal must be positive, got %d", domain.ErrInvalidConfiguration, goal)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.goals.Save(ctx, goal); err != nil {
		return err
	}
	s.goal = goal

	s.logger.Info("calorie goal updated", "calorie_goal", goal)
	return nil
}

// BMI derives the current body mass index and its category from the profile.
func (s *ProfileService) BMI() (float64, biometrics.BMICategory, error) {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()

	if profile == nil {
		return 0, "", ErrNotOnboarded
	}
	bmi, err := biometrics.BMI(profile.CurrentWeightKg, profile.HeightCm)
	if err != nil {
		return 0, "", err
	}
	return bmi, biometrics.Categorize(bmi), nil
}

// Progress derives the weight progress percentage, using the ledger's latest
// observation as the current weight when one exists.
func (s *ProfileService) Progress(latestWeightKg float64) (float64, error) {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()

	if profile == nil {
		return 0, ErrNotOnboarded
	}
	current := latestWeightKg
	if current <= 0 {
		current = profile.CurrentWeightKg
	}
	return biometrics.ProgressPercent(profile.CurrentWeightKg, current, profile.TargetWeightKg), nil
}
