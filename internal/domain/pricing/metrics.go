package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Métricas derivadas para el dashboard. Se recalculan con lo que pase el caller;
// no deben usarse para persistir nada.

// ConversionRate porcentaje de cotizaciones convertidas en órdenes (2 decimales).
// Sin cotizaciones devuelve 0.
func ConversionRate(quotationCount, orderCount int64) decimal.Decimal {
	if quotationCount <= 0 || orderCount <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(orderCount).
		Mul(hundred).
		Div(decimal.NewFromInt(quotationCount)).
		Round(MoneyPlaces)
}

// ShipmentProgress porcentaje despachado sobre lo ordenado, acotado a [0, 100].
func ShipmentProgress(totalQuantity, totalShipped any) decimal.Decimal {
	total := NormalizeQuantity(totalQuantity)
	shipped := NormalizeQuantity(totalShipped)
	if total.IsZero() {
		return decimal.Zero
	}
	p := shipped.Mul(hundred).Div(total)
	if p.GreaterThan(hundred) {
		p = hundred
	}
	return p.Round(MoneyPlaces)
}

// DaysUntil días calendario entre now y due. Negativo = vencido.
// due es una fecha de calendario: vale su año/mes/día tal cual, sin convertir
// de zona. "Hoy" es la fecha de now en su propia zona. Para comparar un
// instante (created_at) conviértalo antes a la zona de now.
func DaysUntil(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(today).Hours() / 24)
}
