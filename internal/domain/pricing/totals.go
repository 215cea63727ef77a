package pricing

import "github.com/shopspring/decimal"

// Adjustments cargos y descuentos que se aplican una vez por documento.
// Discount es una magnitud que siempre se resta.
type Adjustments struct {
	ShippingFee  decimal.Decimal
	BankCharge   decimal.Decimal
	Discount     decimal.Decimal
	OtherCharges decimal.Decimal
}

// Normalize redondea cada ajuste a 2 decimales y lleva el descuento a magnitud.
func (a Adjustments) Normalize() Adjustments {
	return Adjustments{
		ShippingFee:  NormalizeMoney(a.ShippingFee),
		BankCharge:   NormalizeMoney(a.BankCharge),
		Discount:     NormalizeDiscount(a.Discount),
		OtherCharges: NormalizeMoney(a.OtherCharges),
	}
}

// Totals resultado del agregador.
type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// ComputeDocumentTotals suma los totales de línea y aplica los ajustes:
//
//	subtotal = round(Σ lineTotal, 2)
//	total    = round(subtotal + envío + cargo bancario − descuento + otros, 2)
//
// No valida la cantidad de ítems: una lista vacía da subtotal 0 y un total
// igual a la suma de ajustes.
func ComputeDocumentTotals(items []LineItem, adj Adjustments) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(NormalizeMoney(it.LineTotal))
	}
	subtotal = subtotal.Round(MoneyPlaces)

	a := adj.Normalize()
	total := subtotal.
		Add(a.ShippingFee).
		Add(a.BankCharge).
		Sub(a.Discount).
		Add(a.OtherCharges).
		Round(MoneyPlaces)

	return Totals{Subtotal: subtotal, Total: total}
}
