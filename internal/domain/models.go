package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// IsValid checks if the QuoteStatus is a valid enum value
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Client represents a customer the business issues quotes to
type Client struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Product represents an item in the catalog.
// SupplierID is a weak reference: the supplier may be deleted later, and
// readers must treat a dangling id as "supplier not found".
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Price       float64    `json:"price"`
	Cost        float64    `json:"cost"`
	Stock       int        `json:"stock"`
	SupplierID  *uuid.UUID `json:"supplierId,omitempty"`
}

// Supplier represents a product supplier.
// ProductIDs is informational only; the authoritative product-to-supplier
// linkage is each product's own SupplierID.
type Supplier struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Contact    string      `json:"contact"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	ProductIDs []uuid.UUID `json:"products,omitempty"`
	Notes      string      `json:"notes,omitempty"`
}

// QuoteItem represents one product line within a quote.
// UnitPrice is a snapshot of the product price at authoring time and is
// never re-read from the live product. Discount is an absolute amount
// applied to the whole line, not per unit. Subtotal is derived:
// Subtotal = Quantity*UnitPrice - Discount.
type QuoteItem struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Discount  float64   `json:"discount"`
	Subtotal  float64   `json:"subtotal"`
}

// Quote represents a priced proposal issued to a client.
// Subtotal, Tax, DiscountTotal and Total are derived from Items and are
// recomputed on every item mutation; Items keeps insertion order.
type Quote struct {
	ID            uuid.UUID   `json:"id"`
	ClientID      uuid.UUID   `json:"clientId"`
	Date          time.Time   `json:"date"`
	ValidUntil    time.Time   `json:"validUntil"`
	Items         []QuoteItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	DiscountTotal float64     `json:"discountTotal"`
	Total         float64     `json:"total"`
	Status        QuoteStatus `json:"status"`
	Notes         string      `json:"notes,omitempty"`
}

// ItemForProduct returns the first line for productID, if any.
func (q *Quote) ItemForProduct(productID uuid.UUID) (*QuoteItem, bool) {
	for i := range q.Items {
		if q.Items[i].ProductID == productID {
			return &q.Items[i], true
		}
	}
	return nil, false
}

// QuotesToReject selects the quotes that must be rejected when the quote
// identified by acceptedID is accepted for clientID: every other quote of
// the same client whose status is not already rejected. Exclusivity of the
// accepted quote is imposed here, at acceptance time, not as a standing
// invariant on creation.
func QuotesToReject(clientID, acceptedID uuid.UUID, all []Quote) []Quote {
	var siblings []Quote
	for _, q := range all {
		if q.ClientID == clientID && q.ID != acceptedID && q.Status != QuoteStatusRejected {
			siblings = append(siblings, q)
		}
	}
	return siblings
}
