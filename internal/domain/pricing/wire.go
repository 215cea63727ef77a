package pricing

import "github.com/shopspring/decimal"

// FormatQuantity cantidad como string con 1 decimal ("2.0").
func FormatQuantity(d decimal.Decimal) string {
	return d.StringFixed(QuantityPlaces)
}

// FormatMoney monto como string con 2 decimales ("270.00").
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

// FormatMultiplier multiplicador como string con 4 decimales ("1.1000").
func FormatMultiplier(d decimal.Decimal) string {
	return d.StringFixed(MultiplierPlaces)
}
