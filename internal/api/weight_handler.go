package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/nutrisnap/internal/api/shared"
	"github.com/phrazzld/nutrisnap/internal/domain"
)

// WeightLedgerService is the weight ledger surface the handler depends on.
type WeightLedgerService interface {
	Record(ctx context.Context, observedOn domain.Day, kilograms float64) (*domain.WeightObservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Recent(n int) []*domain.WeightObservation
}

// RecordWeightRequest represents the request body for recording a weight
// observation.
type RecordWeightRequest struct {
	// ObservedOn defaults to today when omitted.
	ObservedOn string  `json:"observed_on" validate:"omitempty,datetime=2006-01-02"`
	Kilograms  float64 `json:"kilograms" validate:"required,gt=0"`
}

// WeightResponse represents the response data for a weight observation.
type WeightResponse struct {
	ID         string    `json:"id"`
	ObservedOn string    `json:"observed_on"`
	Kilograms  float64   `json:"kilograms"`
	CreatedAt  time.Time `json:"created_at"`
}

// WeightHandler handles weight ledger HTTP requests.
type WeightHandler struct {
	weights   WeightLedgerService
	validator *validator.Validate
}

// NewWeightHandler creates a new WeightHandler.
func NewWeightHandler(weights WeightLedgerService) *WeightHandler {
	return &WeightHandler{
		weights:   weights,
		validator: validator.New(),
	}
}

// RecordWeight handles POST /api/weights requests.
func (h *WeightHandler) RecordWeight(w http.ResponseWriter, r *http.Request) {
	var req RecordWeightRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	observedOn := domain.Today()
	if req.ObservedOn != "" {
		observedOn = domain.Day(req.ObservedOn)
	}

	observation, err := h.weights.Record(r.Context(), observedOn, req.Kilograms)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, weightToResponse(observation))
}

// ListWeights handles GET /api/weights requests. The optional limit query
// parameter caps the number of returned observations, most recent last.
func (h *WeightHandler) ListWeights(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	observations := h.weights.Recent(limit)
	responses := make([]WeightResponse, 0, len(observations))
	for _, observation := range observations {
		responses = append(responses, weightToResponse(observation))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// DeleteWeight handles DELETE /api/weights/{id} requests.
func (h *WeightHandler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid observation ID")
		return
	}

	if err := h.weights.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// weightToResponse converts a domain.WeightObservation to a WeightResponse.
func weightToResponse(observation *domain.WeightObservation) WeightResponse {
	return WeightResponse{
		ID:         observation.ID.String(),
		ObservedOn: string(observation.ObservedOn),
		Kilograms:  observation.Kilograms,
		CreatedAt:  observation.CreatedAt,
	}
}
