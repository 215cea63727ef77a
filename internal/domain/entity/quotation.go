package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// Estados de una cotización.
const (
	QuotationDraft     = "draft"
	QuotationPending   = "pending"
	QuotationApproved  = "approved"
	QuotationRejected  = "rejected"
	QuotationConverted = "converted" // solo lo asigna la conversión a orden de venta
)

// ValidQuotationStatus indica si s es un estado conocido.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationDraft, QuotationPending, QuotationApproved, QuotationRejected, QuotationConverted:
		return true
	}
	return false
}

// Quotation cabecera de cotización con sus líneas.
type Quotation struct {
	ID            string
	CompanyID     string
	CustomerID    string
	CreatedBy     string
	Number        string // QT-2026-0001
	Revision      int    // 1 = R1
	Status        string
	PriceListCode string
	ValidUntil    *time.Time
	Notes         string
	Adjustments
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
	Items     []DocumentItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RevisionLabel etiqueta visible de la revisión ("R1", "R2", ...).
func (q *Quotation) RevisionLabel() string {
	return fmt.Sprintf("R%d", q.Revision)
}

// Document vista de cálculo de la cotización.
func (q *Quotation) Document() pricing.Document {
	return pricing.Document{
		Items:       toPricingItems(q.Items),
		Adjustments: q.Adjustments.toPricing(),
		Subtotal:    q.Subtotal,
		Total:       q.Total,
	}
}

// Apply recalcula doc y lo copia a la cotización (líneas, ajustes y totales).
func (q *Quotation) Apply(doc pricing.Document) {
	doc = pricing.Recalculate(doc)
	q.Items, q.Adjustments = fromPricing(q.Items, doc)
	q.Subtotal = doc.Subtotal
	q.Total = doc.Total
}

// CheckRevisable aplica la regla de bloqueo: una cotización aprobada o convertida,
// o creada antes de hoy, no se revisa; se duplica.
func (q *Quotation) CheckRevisable(now time.Time) error {
	switch q.Status {
	case QuotationApproved:
		return fmt.Errorf("%w: la cotización %s está aprobada", domain.ErrLocked, q.Number)
	case QuotationConverted:
		return fmt.Errorf("%w: la cotización %s ya se convirtió en orden de venta", domain.ErrLocked, q.Number)
	}
	if pricing.DaysUntil(q.CreatedAt.In(now.Location()), now) < 0 {
		return fmt.Errorf("%w: la cotización %s es de un día anterior, cree un duplicado", domain.ErrLocked, q.Number)
	}
	return nil
}
