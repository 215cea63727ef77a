package dto

import (
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// CreateProductRequest entrada para crear un producto.
// BasePrice acepta número o string ("1,250.00"); se normaliza a 2 decimales.
type CreateProductRequest struct {
	SKU           string      `json:"sku" validate:"required,min=1,max=100"`
	Name          string      `json:"name" validate:"required,min=1,max=200"`
	Description   string      `json:"description"`
	Specification string      `json:"specification"`
	BasePrice     pricing.Raw `json:"basePrice"`
	UnitMeasure   string      `json:"unitMeasure" validate:"omitempty,max=20"`
}

// UpdateProductRequest campos opcionales; nil = no cambia.
type UpdateProductRequest struct {
	Name          *string     `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string     `json:"description"`
	Specification *string     `json:"specification"`
	BasePrice     pricing.Raw `json:"basePrice"`
	UnitMeasure   *string     `json:"unitMeasure" validate:"omitempty,max=20"`
	Active        *bool       `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Specification string    `json:"specification,omitempty"`
	BasePrice     string    `json:"basePrice"`
	UnitMeasure   string    `json:"unitMeasure"`
	Active        bool      `json:"active"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
