package models

import "github.com/google/uuid"

// InvoiceFilter narrows invoice listings. Zero values mean "any".
type InvoiceFilter struct {
	TenancyID uuid.UUID
	UserID    uuid.UUID
	Status    string
}

// RequestFilter narrows service-request listings. Zero values mean "any".
type RequestFilter struct {
	TenancyID uuid.UUID
	UserID    uuid.UUID
	Status    string
}
