package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/nutrisnap/internal/api/shared"
	"github.com/phrazzld/nutrisnap/internal/biometrics"
	"github.com/phrazzld/nutrisnap/internal/domain"
)

// ProfileManager is the profile/goal surface the handler depends on.
type ProfileManager interface {
	Onboarded() bool
	Profile() *domain.UserProfile
	CompleteOnboarding(ctx context.Context, draft domain.UserProfile, goalKind domain.GoalKind) (*domain.UserProfile, domain.CalorieGoal, error)
	UpdateProfile(ctx context.Context, profile domain.UserProfile) error
	CalorieGoal() domain.CalorieGoal
	SetCalorieGoal(ctx context.Context, goal domain.CalorieGoal) error
	BMI() (float64, biometrics.BMICategory, error)
	Progress(latestWeightKg float64) (float64, error)
}

// LatestWeightProvider supplies the most recent ledger observation for the
// progress metric.
type LatestWeightProvider interface {
	Latest() *domain.WeightObservation
}

// OnboardingRequest represents the request body for completing onboarding.
type OnboardingRequest struct {
	Name            string  `json:"name" validate:"required,min=1"`
	HeightCm        float64 `json:"height_cm" validate:"required,gt=0"`
	CurrentWeightKg float64 `json:"current_weight_kg" validate:"required,gt=0"`
	AgeYears        float64 `json:"age_years" validate:"required,gt=0"`
	BiologicalSex   string  `json:"biological_sex" validate:"required,oneof=male female other"`
	GoalKind        string  `json:"goal_kind" validate:"required,oneof=lose_weight gain_weight gain_muscle improve_health other"`
}

// UpdateProfileRequest represents the request body for editing the profile.
type UpdateProfileRequest struct {
	Name            string  `json:"name" validate:"required,min=1"`
	HeightCm        float64 `json:"height_cm" validate:"required,gt=0"`
	CurrentWeightKg float64 `json:"current_weight_kg" validate:"required,gt=0"`
	TargetWeightKg  float64 `json:"target_weight_kg" validate:"required,gt=0"`
	AgeYears        float64 `json:"age_years" validate:"required,gt=0"`
	BiologicalSex   string  `json:"biological_sex" validate:"required,oneof=male female other"`
}

// SetGoalRequest represents the request body for overriding the calorie goal.
type SetGoalRequest struct {
	CalorieGoal int `json:"calorie_goal" validate:"required"`
}

// ProfileResponse represents the response data for the profile.
type ProfileResponse struct {
	Profile     *domain.UserProfile `json:"profile"`
	CalorieGoal int                 `json:"calorie_goal"`
}

// MetricsResponse represents the derived biometric metrics.
type MetricsResponse struct {
	BMI             float64 `json:"bmi"`
	BMICategory     string  `json:"bmi_category"`
	ProgressPercent float64 `json:"progress_percent"`
}

// ProfileHandler handles profile and goal HTTP requests.
type ProfileHandler struct {
	profiles  ProfileManager
	weights   LatestWeightProvider
	validator *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles ProfileManager, weights LatestWeightProvider) *ProfileHandler {
	return &ProfileHandler{
		profiles:  profiles,
		weights:   weights,
		validator: validator.New(),
	}
}

// CompleteOnboarding handles POST /api/onboarding requests.
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var req OnboardingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	draft := domain.UserProfile{
		Name:            req.Name,
		HeightCm:        req.HeightCm,
		CurrentWeightKg: req.CurrentWeightKg,
		AgeYears:        req.AgeYears,
		BiologicalSex:   domain.Sex(req.BiologicalSex),
	}

	profile, goal, err := h.profiles.CompleteOnboarding(r.Context(), draft, domain.GoalKind(req.GoalKind))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ProfileResponse{
		Profile:     profile,
		CalorieGoal: int(goal),
	})
}

// GetProfile handles GET /api/profile requests.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile := h.profiles.Profile()
	if profile == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Onboarding has not completed")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Profile:     profile,
		CalorieGoal: int(h.profiles.CalorieGoal()),
	})
}

// UpdateProfile handles PUT /api/profile requests.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile := domain.UserProfile{
		Name:            req.Name,
		HeightCm:        req.HeightCm,
		CurrentWeightKg: req.CurrentWeightKg,
		TargetWeightKg:  req.TargetWeightKg,
		AgeYears:        req.AgeYears,
		BiologicalSex:   domain.Sex(req.BiologicalSex),
	}

	if err := h.profiles.UpdateProfile(r.Context(), profile); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Profile:     h.profiles.Profile(),
		CalorieGoal: int(h.profiles.CalorieGoal()),
	})
}

// GetGoal handles GET /api/goal requests.
func (h *ProfileHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int{
		"calorie_goal": int(h.profiles.CalorieGoal()),
	})
}

// SetGoal handles PUT /api/goal requests.
func (h *ProfileHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req SetGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.profiles.SetCalorieGoal(r.Context(), domain.CalorieGoal(req.CalorieGoal)); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int{
		"calorie_goal": int(h.profiles.CalorieGoal()),
	})
}

// GetMetrics handles GET /api/profile/metrics requests, returning BMI and
// weight progress derived from the profile and the latest ledger observation.
func (h *ProfileHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	bmi, category, err := h.profiles.BMI()
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	latestKg := 0.0
	if latest := h.weights.Latest(); latest != nil {
		latestKg = latest.Kilograms
	}
	progress, err := h.profiles.Progress(latestKg)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MetricsResponse{
		BMI:             bmi,
		BMICategory:     string(category),
		ProgressPercent: progress,
	})
}
