package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de cobro.
const (
	PaymentKindPayment = "payment"
	PaymentKindRefund  = "refund"
)

// Estado de cobro de una orden de venta (derivado de total y pagado).
const (
	PaymentUnpaid  = "unpaid"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Payment pago o reembolso sobre una orden de venta.
// Amount siempre es positivo; Kind indica si suma o resta.
type Payment struct {
	ID           string
	CompanyID    string
	SalesOrderID string
	Kind         string
	RefundOf     *string // pago original, solo en reembolsos
	Amount       decimal.Decimal
	Method       string
	Reference    string
	Notes        string
	PaidAt       time.Time
	RecordedBy   string
	CreatedAt    time.Time

	// Refunded suma de reembolsos ya aplicados a este pago (solo lectura).
	Refunded decimal.Decimal
}

// Signed monto con signo: negativo para reembolsos.
func (p *Payment) Signed() decimal.Decimal {
	if p.Kind == PaymentKindRefund {
		return p.Amount.Neg()
	}
	return p.Amount
}

// Refundable lo que aún se puede reembolsar de un pago.
func (p *Payment) Refundable() decimal.Decimal {
	if p.Kind != PaymentKindPayment {
		return decimal.Zero
	}
	r := p.Amount.Sub(p.Refunded)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
