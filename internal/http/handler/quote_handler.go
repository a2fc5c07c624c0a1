package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/service"
)

// QuoteHandler handles HTTP requests for quote authoring, item edits and
// the acceptance lifecycle
type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

// NewQuoteHandler creates a new quote handler instance
func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// List returns all quotes; ?clientId= filters by client
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	var clientID *uuid.UUID
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid clientId filter format",
			})
			return
		}
		clientID = &id
	}

	quotes, err := h.quoteService.GetAll(r.Context(), clientID)
	if err != nil {
		h.logger.Error("failed to list quotes", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list quotes",
		})
		return
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	respondJSON(w, http.StatusOK, quotes)
}

// GetByID returns a single quote
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Quote not found",
			})
			return
		}
		h.logger.Error("failed to get quote", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get quote",
		})
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Create authors a new quote
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
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

	quote, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		if h.respondQuoteError(w, err) {
			return
		}
		h.logger.Error("failed to create quote", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create quote",
		})
		return
	}

	w.Header().Set("Location", "/api/v1/quotes/"+quote.ID.String())
	respondJSON(w, http.StatusCreated, quote)
}

// Update applies a partial update to a quote
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	var req domain.UpdateQuoteRequest
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

	quote, err := h.quoteService.Update(r.Context(), id, &req)
	if err != nil {
		if h.respondQuoteError(w, err) {
			return
		}
		h.logger.Error("failed to update quote", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update quote",
		})
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Delete removes a quote
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	if err := h.quoteService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Quote not found",
			})
			return
		}
		h.logger.Error("failed to delete quote", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete quote",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Accept marks the quote accepted and rejects the client's other quotes
func (h *QuoteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	result, err := h.quoteService.Accept(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Quote not found",
			})
			return
		}
		h.logger.Error("failed to accept quote", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to accept quote",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AddItem appends a line to a quote
func (h *QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	var req domain.QuoteItemRequest
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

	quote, err := h.quoteService.AddItem(r.Context(), id, &req)
	if err != nil {
		if h.respondQuoteError(w, err) {
			return
		}
		h.logger.Error("failed to add quote item", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to add quote item",
		})
		return
	}

	respondJSON(w, http.StatusCreated, quote)
}

// UpdateItem edits a quote line
func (h *QuoteHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid item ID format",
		})
		return
	}

	var req domain.UpdateQuoteItemRequest
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

	quote, err := h.quoteService.UpdateItem(r.Context(), id, itemID, &req)
	if err != nil {
		if h.respondQuoteError(w, err) {
			return
		}
		h.logger.Error("failed to update quote item", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update quote item",
		})
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// RemoveItem deletes a quote line
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote ID format",
		})
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid item ID format",
		})
		return
	}

	quote, err := h.quoteService.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		if h.respondQuoteError(w, err) {
			return
		}
		h.logger.Error("failed to remove quote item", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to remove quote item",
		})
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// respondQuoteError maps the quote service sentinels to HTTP responses.
// Returns false when the error is not one of them.
func (h *QuoteHandler) respondQuoteError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, service.ErrQuoteNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Quote not found",
		})
	case errors.Is(err, service.ErrQuoteItemNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Quote item not found",
		})
	case errors.Is(err, service.ErrProductNotFound):
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Referenced product not found",
		})
	case errors.Is(err, service.ErrInvalidStatus):
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid quote status",
		})
	case errors.Is(err, service.ErrInvalidValidUntil):
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "validUntil must not be before the quote date",
		})
	default:
		return false
	}
	return true
}
