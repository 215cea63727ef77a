package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// Estados de una orden de venta.
const (
	SalesOrderPending      = "pending"
	SalesOrderConfirmed    = "confirmed"
	SalesOrderInProduction = "in_production"
	SalesOrderCompleted    = "completed"
	SalesOrderCancelled    = "cancelled"
	SalesOrderPaid         = "paid"
)

// ValidSalesOrderStatus indica si s es un estado conocido.
func ValidSalesOrderStatus(s string) bool {
	switch s {
	case SalesOrderPending, SalesOrderConfirmed, SalesOrderInProduction, SalesOrderCompleted, SalesOrderCancelled, SalesOrderPaid:
		return true
	}
	return false
}

// SalesOrder orden de venta; puede venir de una cotización aprobada o crearse directa.
type SalesOrder struct {
	ID          string
	CompanyID   string
	CustomerID  string
	QuotationID *string
	CreatedBy   string
	Number      string // SO-2026-0001
	Revision    int
	Status      string
	DueDate     *time.Time
	Notes       string
	Adjustments
	Subtotal   decimal.Decimal
	Total      decimal.Decimal
	PaidAmount decimal.Decimal // pagos menos reembolsos
	Items      []DocumentItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Balance saldo por cobrar, nunca negativo.
func (o *SalesOrder) Balance() decimal.Decimal {
	b := o.Total.Sub(o.PaidAmount)
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// PaymentStatus unpaid, partial o paid según lo cobrado.
func (o *SalesOrder) PaymentStatus() string {
	switch {
	case o.PaidAmount.IsPositive() && !o.Balance().IsPositive():
		return PaymentPaid
	case o.PaidAmount.IsPositive():
		return PaymentPartial
	}
	return PaymentUnpaid
}

// Document vista de cálculo de la orden.
func (o *SalesOrder) Document() pricing.Document {
	return pricing.Document{
		Items:       toPricingItems(o.Items),
		Adjustments: o.Adjustments.toPricing(),
		Subtotal:    o.Subtotal,
		Total:       o.Total,
	}
}

// Apply recalcula doc y lo copia a la orden.
func (o *SalesOrder) Apply(doc pricing.Document) {
	doc = pricing.Recalculate(doc)
	o.Items, o.Adjustments = fromPricing(o.Items, doc)
	o.Subtotal = doc.Subtotal
	o.Total = doc.Total
}
