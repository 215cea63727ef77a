package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// Estados de una orden de producción.
const (
	JobOrderPending      = "pending"
	JobOrderInProduction = "in_production"
	JobOrderCompleted    = "completed"
)

// JobOrder orden de producción generada a partir de una orden de venta.
type JobOrder struct {
	ID           string
	CompanyID    string
	SalesOrderID string
	CustomerID   string
	CreatedBy    string
	Number       string // JO-2026-0001
	Status       string
	DueDate      time.Time
	Instructions string
	Items        []JobOrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobOrderItem cantidad ordenada vs despachada de una línea.
type JobOrderItem struct {
	ID            string
	JobOrderID    string
	Position      int
	ProductID     string
	ProductName   string
	Specification string
	Quantity      decimal.Decimal
	Shipped       decimal.Decimal
}

// Balance cantidad pendiente por despachar.
func (it JobOrderItem) Balance() decimal.Decimal {
	b := it.Quantity.Sub(it.Shipped)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// Shipment un despacho registrado sobre una línea.
type Shipment struct {
	ID         string
	JobOrderID string
	ItemID     string
	Quantity   decimal.Decimal
	ShippedAt  time.Time
	RecordedBy string
}

// Totals suma de cantidades ordenadas y despachadas.
func (j *JobOrder) Totals() (quantity, shipped decimal.Decimal) {
	quantity, shipped = decimal.Zero, decimal.Zero
	for _, it := range j.Items {
		quantity = quantity.Add(it.Quantity)
		shipped = shipped.Add(it.Shipped)
	}
	return quantity, shipped
}

// Progress porcentaje despachado (solo para mostrar).
func (j *JobOrder) Progress() decimal.Decimal {
	q, s := j.Totals()
	return pricing.ShipmentProgress(q, s)
}

// FullyShipped todas las líneas sin saldo.
func (j *JobOrder) FullyShipped() bool {
	for _, it := range j.Items {
		if it.Balance().IsPositive() {
			return false
		}
	}
	return len(j.Items) > 0
}
