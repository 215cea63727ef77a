package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxItems tope de líneas por documento.
const MaxItems = 300

var (
	ErrNoItems      = errors.New("el documento debe tener al menos un ítem")
	ErrTooManyItems = errors.New("el documento supera el máximo de ítems")
	ErrItemIndex    = errors.New("índice de ítem fuera de rango")
)

// Document es el valor inmutable de una cotización u orden de venta para efectos
// de cálculo. Cada operación devuelve un Document nuevo con subtotal y total
// recalculados; el receptor nunca se modifica.
type Document struct {
	Items       []LineItem
	Adjustments Adjustments
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
}

// NewDraft crea el borrador inicial: una línea vacía con cantidad 1.0.
func NewDraft() Document {
	return Recalculate(Document{Items: []LineItem{{Quantity: decimal.NewFromInt(1)}}})
}

// Recalculate normaliza todas las líneas y los ajustes y recalcula los totales.
// Es idempotente: Recalculate(Recalculate(d)) == Recalculate(d).
func Recalculate(doc Document) Document {
	items := make([]LineItem, len(doc.Items))
	for i, it := range doc.Items {
		items[i] = it.Recompute()
	}
	adj := doc.Adjustments.Normalize()
	t := ComputeDocumentTotals(items, adj)
	return Document{Items: items, Adjustments: adj, Subtotal: t.Subtotal, Total: t.Total}
}

// AppendItem agrega una línea al final.
func (d Document) AppendItem(item LineItem) (Document, error) {
	if len(d.Items)+1 > MaxItems {
		return d, ErrTooManyItems
	}
	items := make([]LineItem, 0, len(d.Items)+1)
	items = append(items, d.Items...)
	items = append(items, item)
	return Recalculate(Document{Items: items, Adjustments: d.Adjustments}), nil
}

// ReplaceItem reemplaza la línea i (cambio de producto, cantidad o precio).
func (d Document) ReplaceItem(i int, item LineItem) (Document, error) {
	if i < 0 || i >= len(d.Items) {
		return d, fmt.Errorf("%w: %d", ErrItemIndex, i)
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	items[i] = item
	return Recalculate(Document{Items: items, Adjustments: d.Adjustments}), nil
}

// RemoveItem quita la línea i. El documento nunca queda sin líneas.
func (d Document) RemoveItem(i int) (Document, error) {
	if i < 0 || i >= len(d.Items) {
		return d, fmt.Errorf("%w: %d", ErrItemIndex, i)
	}
	if len(d.Items) == 1 {
		return d, ErrNoItems
	}
	items := make([]LineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:i]...)
	items = append(items, d.Items[i+1:]...)
	return Recalculate(Document{Items: items, Adjustments: d.Adjustments}), nil
}

// WithAdjustments reemplaza los ajustes del documento.
func (d Document) WithAdjustments(adj Adjustments) Document {
	return Recalculate(Document{Items: d.Items, Adjustments: adj})
}

// ValidateItemCount aplica la regla 1..limit antes de enviar un documento.
// limit <= 0 usa MaxItems.
func ValidateItemCount(n, limit int) error {
	if limit <= 0 {
		limit = MaxItems
	}
	if n < 1 {
		return ErrNoItems
	}
	if n > limit {
		return fmt.Errorf("%w: %d > %d", ErrTooManyItems, n, limit)
	}
	return nil
}
