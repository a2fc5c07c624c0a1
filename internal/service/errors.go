package service

import "errors"

// Service-level sentinel errors. Handlers dispatch on these with errors.Is.
var (
	ErrClientNotFound    = errors.New("client not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrQuoteItemNotFound = errors.New("quote item not found")
	ErrInvalidStatus     = errors.New("invalid quote status")
	ErrInvalidValidUntil = errors.New("validUntil must not be before the quote date")
)
