package api

import (
	"net/http"

	"github.com/phrazzld/nutrisnap/internal/api/shared"
	"github.com/phrazzld/nutrisnap/internal/domain"
	"github.com/phrazzld/nutrisnap/internal/nutrition"
)

// NutritionReader is the aggregation surface the handler depends on.
type NutritionReader interface {
	TotalsFor(day domain.Day) (nutrition.DailyTotals, error)
	RemainingCalories(day domain.Day, goal domain.CalorieGoal) (float64, error)
	ProgressFraction(day domain.Day, goal domain.CalorieGoal) (float64, error)
}

// GoalProvider supplies the effective daily calorie goal.
type GoalProvider interface {
	CalorieGoal() domain.CalorieGoal
}

// DailySummaryResponse represents a day's nutrition aggregated against the
// calorie goal.
type DailySummaryResponse struct {
	Totals            nutrition.DailyTotals `json:"totals"`
	Goal              int                   `json:"goal"`
	RemainingCalories float64               `json:"remaining_calories"`
	ProgressFraction  float64               `json:"progress_fraction"`
}

// NutritionHandler handles nutrition aggregation HTTP requests.
type NutritionHandler struct {
	aggregator NutritionReader
	goals      GoalProvider
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(aggregator NutritionReader, goals GoalProvider) *NutritionHandler {
	return &NutritionHandler{
		aggregator: aggregator,
		goals:      goals,
	}
}

// GetDailySummary handles GET /api/nutrition/daily requests. The optional
// day query parameter selects the day; it defaults to today.
func (h *NutritionHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	day := domain.Today()
	if raw := r.URL.Query().Get("day"); raw != "" {
		day = domain.Day(raw)
	}

	goal := h.goals.CalorieGoal()

	totals, err := h.aggregator.TotalsFor(day)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	remaining, err := h.aggregator.RemainingCalories(day, goal)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	fraction, err := h.aggregator.ProgressFraction(day, goal)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DailySummaryResponse{
		Totals:            totals,
		Goal:              int(goal),
		RemainingCalories: remaining,
		ProgressFraction:  fraction,
	})
}
