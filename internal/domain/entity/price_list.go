package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Códigos de lista de precios estándar.
const (
	PriceListNew     = "NEW"
	PriceListRegular = "REGULAR"
	PriceListPremier = "PREMIER"
	// PriceListBase no existe en la tabla: es el precio base sin multiplicador.
	PriceListBase = "BASE"
)

// PriceList lista de precios por empresa. Precio = BasePrice × Multiplier.
type PriceList struct {
	ID          string
	CompanyID   string
	Code        string
	Name        string
	Multiplier  decimal.Decimal // 4 decimales
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
