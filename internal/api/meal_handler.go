package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/nutrisnap/internal/api/shared"
	"github.com/phrazzld/nutrisnap/internal/domain"
)

// MealEntryService is the meal store surface the handler depends on.
type MealEntryService interface {
	AddEntry(ctx context.Context, capturedOn domain.Day, imageRef string) (uuid.UUID, error)
	RemoveEntry(ctx context.Context, id uuid.UUID) error
	ListEntries() []*domain.MealEntry
}

// CreateMealRequest represents the request body for adding a meal entry.
type CreateMealRequest struct {
	// CapturedOn defaults to today when omitted.
	CapturedOn string `json:"captured_on" validate:"omitempty,datetime=2006-01-02"`
	ImageRef   string `json:"image_ref" validate:"required,min=1"`
}

// MealResponse represents the response data for a meal entry.
type MealResponse struct {
	ID         string                 `json:"id"`
	CapturedOn string                 `json:"captured_on"`
	Status     string                 `json:"status"`
	Result     *domain.AnalysisResult `json:"result,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// MealHandler handles meal entry HTTP requests.
type MealHandler struct {
	meals     MealEntryService
	validator *validator.Validate
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(meals MealEntryService) *MealHandler {
	return &MealHandler{
		meals:     meals,
		validator: validator.New(),
	}
}

// CreateMeal handles POST /api/meals requests. Analysis happens
// asynchronously, so the response is 202 Accepted with the entry in its
// analyzing state.
func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	var req CreateMealRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	capturedOn := domain.Today()
	if req.CapturedOn != "" {
		capturedOn = domain.Day(req.CapturedOn)
	}

	id, err := h.meals.AddEntry(r.Context(), capturedOn, req.ImageRef)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	for _, entry := range h.meals.ListEntries() {
		if entry.ID == id {
			shared.RespondWithJSON(w, r, http.StatusAccepted, mealToResponse(entry))
			return
		}
	}
	// The entry was removed between add and read; report the accepted ID.
	shared.RespondWithJSON(w, r, http.StatusAccepted, MealResponse{ID: id.String()})
}

// ListMeals handles GET /api/meals requests, returning entries in creation
// order.
func (h *MealHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	entries := h.meals.ListEntries()
	responses := make([]MealResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mealToResponse(entry))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeleteMeal handles DELETE /api/meals/{id} requests.
func (h *MealHandler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid meal entry ID")
		return
	}

	if err := h.meals.RemoveEntry(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mealToResponse converts a domain.MealEntry to a MealResponse.
func mealToResponse(entry *domain.MealEntry) MealResponse {
	return MealResponse{
		ID:         entry.ID.String(),
		CapturedOn: string(entry.CapturedOn),
		Status:     string(entry.Status),
		Result:     entry.Result,
		CreatedAt:  entry.CreatedAt,
	}
}
