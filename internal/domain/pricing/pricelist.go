package pricing

import "github.com/shopspring/decimal"

// ApplyMultiplier precio de lista = round(base × multiplicador, 2).
// El multiplicador se normaliza a 4 decimales antes de aplicarse.
func ApplyMultiplier(basePrice, multiplier any) decimal.Decimal {
	base := NormalizeMoney(basePrice)
	m := NormalizeMultiplier(multiplier)
	return base.Mul(m).Round(MoneyPlaces)
}
