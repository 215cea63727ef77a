package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleVentas     = "ventas"     // cotizaciones y órdenes de venta
	RoleProduccion = "produccion" // órdenes de producción y despachos
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleVentas, RoleProduccion:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, ventas, produccion
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
