package pricing

import "github.com/shopspring/decimal"

// LineItem es una línea de cotización u orden de venta.
// Invariante: LineTotal == round(Quantity × UnitPrice, 2) después de Recompute.
type LineItem struct {
	ProductID     string
	ProductName   string
	Specification string
	Quantity      decimal.Decimal // 1 decimal
	UnitPrice     decimal.Decimal // 2 decimales
	LineTotal     decimal.Decimal // 2 decimales, derivado
}

// ComputeLineTotal = round(NormalizeQuantity(quantity) × unitPrice, 2).
// El precio se usa tal como llega (incluye precios editados a mano); solo la
// cantidad se redondea antes de multiplicar.
func ComputeLineTotal(quantity, unitPrice any) decimal.Decimal {
	q := NormalizeQuantity(quantity)
	p, _ := Parse(unitPrice)
	return q.Mul(p).Round(MoneyPlaces)
}

// Recompute devuelve una copia con cantidad y precio normalizados y el total
// de la línea recalculado. No consulta listas de precios: el precio que trae
// la línea es el que vale.
func (li LineItem) Recompute() LineItem {
	li.Quantity = NormalizeQuantity(li.Quantity)
	li.UnitPrice = NormalizeMoney(li.UnitPrice)
	li.LineTotal = ComputeLineTotal(li.Quantity, li.UnitPrice)
	return li
}
