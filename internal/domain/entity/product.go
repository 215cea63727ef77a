package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto cotizable. BasePrice es el precio sobre el que se aplican
// los multiplicadores de las listas de precios.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Specification string // especificación por defecto que se copia a la línea
	BasePrice     decimal.Decimal
	UnitMeasure   string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
