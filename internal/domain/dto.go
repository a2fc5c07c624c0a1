package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse is the generic error payload returned by handlers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
	Notes   string `json:"notes" validate:"max=2000"`
}

// UpdateClientRequest carries a partial client update; nil fields are untouched
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Category    string     `json:"category" validate:"max=100"`
	Price       float64    `json:"price" validate:"gte=0"`
	Cost        float64    `json:"cost" validate:"gte=0"`
	Stock       int        `json:"stock" validate:"gte=0"`
	SupplierID  *uuid.UUID `json:"supplierId,omitempty"`
}

// UpdateProductRequest carries a partial product update; nil fields are
// untouched. DetachSupplier clears the supplier reference explicitly since a
// nil SupplierID only means "not provided".
type UpdateProductRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category       *string    `json:"category,omitempty" validate:"omitempty,max=100"`
	Price          *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Cost           *float64   `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Stock          *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	SupplierID     *uuid.UUID `json:"supplierId,omitempty"`
	DetachSupplier bool       `json:"detachSupplier,omitempty"`
}

// CreateSupplierRequest is the payload for creating a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
	Notes   string `json:"notes" validate:"max=2000"`
}

// UpdateSupplierRequest carries a partial supplier update; nil fields are untouched
type UpdateSupplierRequest struct {
	Name       *string     `json:"name,omitempty" validate:"omitempty,max=200"`
	Contact    *string     `json:"contact,omitempty" validate:"omitempty,max=200"`
	Email      *string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string     `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address    *string     `json:"address,omitempty" validate:"omitempty,max=500"`
	Notes      *string     `json:"notes,omitempty" validate:"omitempty,max=2000"`
	ProductIDs []uuid.UUID `json:"products,omitempty"`
}

// QuoteItemRequest describes a quote line to add. When UnitPrice is nil the
// current product price is snapshotted in at authoring time.
type QuoteItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice *float64  `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	Discount  float64   `json:"discount" validate:"gte=0"`
}

// UpdateQuoteItemRequest carries a partial line edit; nil fields are
// untouched. Changing the product without an explicit unit price snapshots
// the new product's current price.
type UpdateQuoteItemRequest struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	Quantity  *int       `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitPrice *float64   `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	Discount  *float64   `json:"discount,omitempty" validate:"omitempty,gte=0"`
}

// CreateQuoteRequest is the payload for creating a quote. Status defaults to
// draft; Date defaults to the current time.
type CreateQuoteRequest struct {
	ClientID   uuid.UUID          `json:"clientId" validate:"required"`
	Date       *time.Time         `json:"date,omitempty"`
	ValidUntil time.Time          `json:"validUntil" validate:"required"`
	Items      []QuoteItemRequest `json:"items" validate:"omitempty,dive"`
	Status     QuoteStatus        `json:"status" validate:"omitempty,oneof=draft sent accepted rejected"`
	Notes      string             `json:"notes" validate:"max=2000"`
}

// UpdateQuoteRequest carries a partial quote update; nil fields are
// untouched. Any status may be set to any other here; only Accept applies
// the cascading-rejection side effect. Providing Items replaces the whole
// item list and recomputes the aggregates.
type UpdateQuoteRequest struct {
	ClientID   *uuid.UUID          `json:"clientId,omitempty"`
	Date       *time.Time          `json:"date,omitempty"`
	ValidUntil *time.Time          `json:"validUntil,omitempty"`
	Status     *QuoteStatus        `json:"status,omitempty" validate:"omitempty,oneof=draft sent accepted rejected"`
	Notes      *string             `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items      *[]QuoteItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// AcceptQuoteResponse reports the accepted quote and the same-client quotes
// rejected as a side effect
type AcceptQuoteResponse struct {
	Quote            *Quote      `json:"quote"`
	RejectedQuoteIDs []uuid.UUID `json:"rejectedQuoteIds"`
}

// CompareQuotesRequest selects the quotes to compare. The comparison panel
// is bounded to three quotes at a time.
type CompareQuotesRequest struct {
	QuoteIDs []uuid.UUID `json:"quoteIds" validate:"required,min=1,max=3"`
}

// QuoteComparisonSummary is the per-quote column of the comparison document
type QuoteComparisonSummary struct {
	QuoteID       uuid.UUID   `json:"quoteId"`
	ClientID      uuid.UUID   `json:"clientId"`
	Status        QuoteStatus `json:"status"`
	Date          time.Time   `json:"date"`
	ValidUntil    time.Time   `json:"validUntil"`
	ItemCount     int         `json:"itemCount"`
	Subtotal      float64     `json:"subtotal"`
	DiscountTotal float64     `json:"discountTotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Cheapest      bool        `json:"cheapest"`
}

// ProductComparisonEntry is one cell of the product matrix: how a single
// quote prices a product, relative to the best effective price in the set
type ProductComparisonEntry struct {
	QuoteID         uuid.UUID `json:"quoteId"`
	Included        bool      `json:"included"`
	EffectivePrice  float64   `json:"effectivePrice,omitempty"`
	Quantity        int       `json:"quantity,omitempty"`
	BestPrice       bool      `json:"bestPrice,omitempty"`
	PercentOverBest float64   `json:"percentOverBest,omitempty"`
}

// ProductComparisonRow is one row of the product matrix
type ProductComparisonRow struct {
	ProductID uuid.UUID                `json:"productId"`
	BestPrice float64                  `json:"bestPrice"`
	Entries   []ProductComparisonEntry `json:"entries"`
}

// QuoteComparison is the full comparison document for a set of quotes
type QuoteComparison struct {
	Quotes   []QuoteComparisonSummary `json:"quotes"`
	Products []ProductComparisonRow   `json:"products"`
}

// ReconciliationReport summarizes a consistency repair pass
type ReconciliationReport struct {
	DetachedProducts int `json:"detachedProducts"`
	RejectedQuotes   int `json:"rejectedQuotes"`
}
