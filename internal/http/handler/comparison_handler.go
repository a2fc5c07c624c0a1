package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/service"
)

// ComparisonHandler handles HTTP requests for quote comparison
type ComparisonHandler struct {
	comparisonService *service.ComparisonService
	logger            *zap.Logger
}

// NewComparisonHandler creates a new comparison handler instance
func NewComparisonHandler(comparisonService *service.ComparisonService, logger *zap.Logger) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
		logger:            logger,
	}
}

// Compare builds a side-by-side comparison for up to three quotes
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req domain.CompareQuotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.comparisonService.Compare(r.Context(), req.QuoteIDs)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "One or more quotes were not found",
			})
			return
		}
		h.logger.Error("failed to compare quotes", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to compare quotes",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}
