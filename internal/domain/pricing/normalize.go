// Package pricing es el motor de cálculo de cotizaciones y órdenes de venta:
// normalización de cantidades y montos, total por línea, subtotal/total del
// documento y métricas derivadas para el dashboard.
//
// Todo el paquete es puro: sin I/O, sin estado compartido. Los montos usan
// shopspring/decimal de punta a punta; nunca se acumula en float64.
package pricing

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Precisión fija de cada tipo de valor.
const (
	QuantityPlaces   int32 = 1
	MoneyPlaces      int32 = 2
	MultiplierPlaces int32 = 4
)

// Límites de lo que se acepta como número. Fuera de ellos la entrada vale 0:
// redondear un exponente como 1e30000000 cuesta segundos de CPU.
const (
	maxExponent = 18
	minExponent = -40
	maxDigits   = 40
)

// NormalizeQuantity convierte la entrada a cantidad con exactamente 1 decimal.
// Las cantidades negativas se llevan a 0. Entradas no numéricas devuelven 0.
func NormalizeQuantity(raw any) decimal.Decimal {
	d, _ := Parse(raw)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(QuantityPlaces)
}

// NormalizeMoney convierte la entrada a monto con exactamente 2 decimales.
// Redondeo: mitad lejos de cero (2.345 -> 2.35, -2.345 -> -2.35).
// Conserva el signo; entradas no numéricas devuelven 0.
func NormalizeMoney(raw any) decimal.Decimal {
	d, _ := Parse(raw)
	return d.Round(MoneyPlaces)
}

// NormalizeDiscount devuelve el descuento como magnitud no negativa.
// Un descuento capturado como "-20" (convención antigua) vale lo mismo que "20".
func NormalizeDiscount(raw any) decimal.Decimal {
	return NormalizeMoney(raw).Abs()
}

// NormalizeMultiplier convierte un multiplicador de lista de precios a 4 decimales.
// Negativos se llevan a 0.
func NormalizeMultiplier(raw any) decimal.Decimal {
	d, _ := Parse(raw)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(MultiplierPlaces)
}

// Parse interpreta cualquier valor numérico que pueda llegar desde un formulario
// o un JSON. ok es false si la entrada no es numérica o está fuera de rango;
// en ese caso d es 0.
func Parse(raw any) (d decimal.Decimal, ok bool) {
	d, ok = parseAny(raw)
	if !ok || !inRange(d) {
		return decimal.Zero, false
	}
	return d, true
}

// inRange descarta exponentes y coeficientes que harían caro el redondeo.
func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp <= maxExponent && exp >= minExponent && d.NumDigits() <= maxDigits
}

func parseAny(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case decimal.NullDecimal:
		if !v.Valid {
			return decimal.Zero, false
		}
		return v.Decimal, true
	case Raw:
		return v.Decimal()
	case *Raw:
		if v == nil {
			return decimal.Zero, false
		}
		return v.Decimal()
	case string:
		return parseString(v)
	case json.Number:
		return parseString(string(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return fromUint64(uint64(v)), true
	case uint8:
		return decimal.NewFromInt(int64(v)), true
	case uint16:
		return decimal.NewFromInt(int64(v)), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return fromUint64(v), true
	case float32:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Zero, false
	}
}

func fromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// moneyNoise son los caracteres que los usuarios pegan junto al número:
// símbolos de moneda, separador de miles y espacios.
var moneyNoise = strings.NewReplacer("$", "", "₱", "", ",", "", " ", "", "\u00a0", "")

func parseString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "PHP"), "USD")
	s = moneyNoise.Replace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !inRange(d) {
		return decimal.Zero, false
	}
	return d, true
}
