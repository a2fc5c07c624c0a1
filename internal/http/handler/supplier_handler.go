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

// SupplierHandler handles HTTP requests for supplier operations
type SupplierHandler struct {
	supplierService *service.SupplierService
	logger          *zap.Logger
}

// NewSupplierHandler creates a new supplier handler instance
func NewSupplierHandler(supplierService *service.SupplierService, logger *zap.Logger) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		logger:          logger,
	}
}

// List returns all suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierService.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list suppliers", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list suppliers",
		})
		return
	}

	respondJSON(w, http.StatusOK, suppliers)
}

// GetByID returns a single supplier
func (h *SupplierHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid supplier ID format",
		})
		return
	}

	supplier, err := h.supplierService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Supplier not found",
			})
			return
		}
		h.logger.Error("failed to get supplier", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get supplier",
		})
		return
	}

	respondJSON(w, http.StatusOK, supplier)
}

// Create registers a new supplier
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSupplierRequest
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

	supplier, err := h.supplierService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create supplier", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create supplier",
		})
		return
	}

	w.Header().Set("Location", "/api/v1/suppliers/"+supplier.ID.String())
	respondJSON(w, http.StatusCreated, supplier)
}

// Update applies a partial update to a supplier
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid supplier ID format",
		})
		return
	}

	var req domain.UpdateSupplierRequest
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

	supplier, err := h.supplierService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Supplier not found",
			})
			return
		}
		h.logger.Error("failed to update supplier", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update supplier",
		})
		return
	}

	respondJSON(w, http.StatusOK, supplier)
}

// Delete detaches the supplier's products and removes the supplier
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid supplier ID format",
		})
		return
	}

	if err := h.supplierService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Supplier not found",
			})
			return
		}
		h.logger.Error("failed to delete supplier", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete supplier",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
