package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/domain"
	"github.com/gestorcrm/quotes-api/internal/service"
)

// MaintenanceHandler exposes on-demand consistency repairs
type MaintenanceHandler struct {
	reconciliationService *service.ReconciliationService
	logger                *zap.Logger
}

// NewMaintenanceHandler creates a new maintenance handler instance
func NewMaintenanceHandler(reconciliationService *service.ReconciliationService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		reconciliationService: reconciliationService,
		logger:                logger,
	}
}

// Reconcile runs one repair pass and reports what it fixed
func (h *MaintenanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationService.Run(r.Context())
	if err != nil {
		h.logger.Error("reconciliation pass failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Reconciliation pass failed",
		})
		return
	}

	respondJSON(w, http.StatusOK, report)
}
