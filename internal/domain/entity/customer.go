package entity

import "time"

// Customer cliente al que se le cotiza.
// PriceListCode es la lista de precios por defecto del cliente (NEW, REGULAR, PREMIER...).
type Customer struct {
	ID            string
	CompanyID     string
	Name          string
	TaxID         string
	Email         string
	Phone         string
	Address       string
	PriceListCode string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
