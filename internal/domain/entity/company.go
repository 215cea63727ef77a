package entity

import "time"

// Company empresa emisora de cotizaciones (tenant).
type Company struct {
	ID        string
	Name      string
	TaxID     string // TIN / NIT
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
