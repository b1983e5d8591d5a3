package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// RouterDeps holds the services the HTTP surface is built from.
type RouterDeps struct {
	Meals     MealEntryService
	Weights   WeightLedgerService
	Profiles  ProfileManager
	Nutrition NutritionReader
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	mealHandler := NewMealHandler(deps.Meals)
	weightHandler := NewWeightHandler(deps.Weights)
	profileHandler := NewProfileHandler(deps.Profiles, latestAdapter{deps.Weights})
	nutritionHandler := NewNutritionHandler(deps.Nutrition, deps.Profiles)

	r.Route("/api", func(r chi.Router) {
		// Meal entry endpoints
		r.Post("/meals", mealHandler.CreateMeal)
		r.Get("/meals", mealHandler.ListMeals)
		r.Delete("/meals/{id}", mealHandler.DeleteMeal)

		// Nutrition aggregation endpoints
		r.Get("/nutrition/daily", nutritionHandler.GetDailySummary)

		// Weight ledger endpoints
		r.Post("/weights", weightHandler.RecordWeight)
		r.Get("/weights", weightHandler.ListWeights)
		r.Delete("/weights/{id}", weightHandler.DeleteWeight)

		// Profile and goal endpoints
		r.Post("/onboarding", profileHandler.CompleteOnboarding)
		r.Get("/profile", profileHandler.GetProfile)
		r.Put("/profile", profileHandler.UpdateProfile)
		r.Get("/profile/metrics", profileHandler.GetMetrics)
		r.Get("/goal", profileHandler.GetGoal)
		r.Put("/goal", profileHandler.SetGoal)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	return r
}

// latestAdapter narrows a WeightLedgerService to the single method the
// profile handler needs.
type latestAdapter struct {
	weights WeightLedgerService
}

func (a latestAdapter) Latest() *domain.WeightObservation {
	observations := a.weights.Recent(1)
	if len(observations) == 0 {
		return nil
	}
	return observations[0]
}
