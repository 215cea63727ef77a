package pricing_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(q, p string) pricing.LineItem {
	return pricing.LineItem{Quantity: dec(q), UnitPrice: dec(p)}.Recompute()
}

// Escenario A: dos líneas, ajustes con envío, cargo bancario y descuento.
func TestComputeDocumentTotals_EscenarioA(t *testing.T) {
	items := []pricing.LineItem{line("2.0", "100.00"), line("1.5", "50.00")}
	assert.Equal(t, "200.00", pricing.FormatMoney(items[0].LineTotal))
	assert.Equal(t, "75.00", pricing.FormatMoney(items[1].LineTotal))

	got := pricing.ComputeDocumentTotals(items, pricing.Adjustments{
		ShippingFee:  dec("10"),
		BankCharge:   dec("5"),
		Discount:     dec("20"),
		OtherCharges: dec("0"),
	})
	assert.Equal(t, "275.00", pricing.FormatMoney(got.Subtotal))
	assert.Equal(t, "270.00", pricing.FormatMoney(got.Total))
}

// Escenario A con el descuento capturado en negativo (convención antigua):
// el total debe ser el mismo.
func TestComputeDocumentTotals_DescuentoNegativoEquivalente(t *testing.T) {
	items := []pricing.LineItem{line("2.0", "100.00"), line("1.5", "50.00")}
	got := pricing.ComputeDocumentTotals(items, pricing.Adjustments{
		ShippingFee: dec("10"), BankCharge: dec("5"), Discount: dec("-20"),
	})
	assert.Equal(t, "270.00", pricing.FormatMoney(got.Total))
}

// Escenario B: la cantidad se normaliza a 1 decimal antes de multiplicar.
func TestComputeLineTotal_EscenarioB(t *testing.T) {
	got := pricing.ComputeLineTotal("3.14159", "10.00")
	assert.Equal(t, "31.00", pricing.FormatMoney(got))
}

// Escenario C: 300 líneas de 10.00 suman exactamente 3000.00.
func TestComputeDocumentTotals_EscenarioC_SinDeriva(t *testing.T) {
	items := make([]pricing.LineItem, 300)
	for i := range items {
		items[i] = pricing.LineItem{LineTotal: dec("10.00")}
	}
	got := pricing.ComputeDocumentTotals(items, pricing.Adjustments{})
	assert.True(t, got.Subtotal.Equal(dec("3000")), "subtotal = %s", got.Subtotal)
	assert.Equal(t, "3000.00", pricing.FormatMoney(got.Total))

	// 0.1 × 300 en float64 no da 30 exacto; en decimal sí.
	small := make([]pricing.LineItem, 300)
	for i := range small {
		small[i] = line("1.0", "0.10")
	}
	assert.Equal(t, "30.00", pricing.FormatMoney(pricing.ComputeDocumentTotals(small, pricing.Adjustments{}).Subtotal))
}

// Escenario D: cantidad 0 con precio alto.
func TestComputeDocumentTotals_EscenarioD(t *testing.T) {
	items := []pricing.LineItem{line("0", "999.99")}
	assert.Equal(t, "0.00", pricing.FormatMoney(items[0].LineTotal))
	got := pricing.ComputeDocumentTotals(items, pricing.Adjustments{})
	assert.Equal(t, "0.00", pricing.FormatMoney(got.Subtotal))
	assert.Equal(t, "0.00", pricing.FormatMoney(got.Total))
}

func TestComputeDocumentTotals_ListaVacia(t *testing.T) {
	got := pricing.ComputeDocumentTotals(nil, pricing.Adjustments{
		ShippingFee: dec("15.50"), OtherCharges: dec("4.50"), Discount: dec("5"),
	})
	assert.Equal(t, "0.00", pricing.FormatMoney(got.Subtotal))
	assert.Equal(t, "15.00", pricing.FormatMoney(got.Total))
}

func TestComputeLineTotal_EntradasInvalidas(t *testing.T) {
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ComputeLineTotal("abc", "10")))
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ComputeLineTotal("2", nil)))
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ComputeLineTotal(nil, nil)))
}

// Para q, p >= 0: ComputeLineTotal(q, p) == round(round(q,1) × p, 2).
func TestComputeLineTotal_Propiedad(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		q := decimal.New(r.Int63n(100000), -3) // 0.000 .. 99.999
		p := decimal.New(r.Int63n(10000000), -3)
		want := q.Round(1).Mul(p).Round(2)
		got := pricing.ComputeLineTotal(q.String(), p.String())
		require.True(t, want.Equal(got), "q=%s p=%s want=%s got=%s", q, p, want, got)
	}
}

// El subtotal no depende del orden de las líneas y el cálculo es idempotente.
func TestComputeDocumentTotals_ConmutativoEIdempotente(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	items := make([]pricing.LineItem, 120)
	for i := range items {
		items[i] = pricing.LineItem{
			Quantity:  decimal.New(r.Int63n(1000), -1),
			UnitPrice: decimal.New(r.Int63n(100000), -2),
		}.Recompute()
	}
	adj := pricing.Adjustments{ShippingFee: dec("12.34"), Discount: dec("5.55")}

	first := pricing.ComputeDocumentTotals(items, adj)
	second := pricing.ComputeDocumentTotals(items, adj)
	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.Total.String(), second.Total.String())

	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, sum.Round(2).Equal(first.Subtotal))

	shuffled := make([]pricing.LineItem, len(items))
	copy(shuffled, items)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	assert.Equal(t, pricing.FormatMoney(first.Subtotal), pricing.FormatMoney(pricing.ComputeDocumentTotals(shuffled, adj).Subtotal))
}

func TestApplyMultiplier(t *testing.T) {
	assert.Equal(t, "110.00", pricing.FormatMoney(pricing.ApplyMultiplier("100", "1.1")))
	assert.Equal(t, "33.32", pricing.FormatMoney(pricing.ApplyMultiplier("39.99", "0.8333")))
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ApplyMultiplier("100", "x")))
}
