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

// ProductHandler handles HTTP requests for product catalog operations
type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new product handler instance
func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// List returns the catalog; ?supplierId= filters by supplier
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var supplierID *uuid.UUID
	if raw := r.URL.Query().Get("supplierId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid supplierId filter format",
			})
			return
		}
		supplierID = &id
	}

	products, err := h.productService.GetAll(r.Context(), supplierID)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list products",
		})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, products)
}

// GetByID returns a single product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid product ID format",
		})
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Product not found",
			})
			return
		}
		h.logger.Error("failed to get product", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get product",
		})
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Create adds a product to the catalog
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
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

	product, err := h.productService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create product",
		})
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid product ID format",
		})
		return
	}

	var req domain.UpdateProductRequest
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

	product, err := h.productService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Product not found",
			})
			return
		}
		h.logger.Error("failed to update product", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update product",
		})
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid product ID format",
		})
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Product not found",
			})
			return
		}
		h.logger.Error("failed to delete product", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete product",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
