package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

func TestNewDraft_UnaLineaVacia(t *testing.T) {
	d := pricing.NewDraft()
	require.Len(t, d.Items, 1)
	assert.Equal(t, "1.0", pricing.FormatQuantity(d.Items[0].Quantity))
	assert.Equal(t, "0.00", pricing.FormatMoney(d.Subtotal))
	assert.Equal(t, "0.00", pricing.FormatMoney(d.Total))
}

func TestDocument_EdicionesRecalculanSinMutar(t *testing.T) {
	d := pricing.NewDraft()
	d1, err := d.ReplaceItem(0, pricing.LineItem{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("100")})
	require.NoError(t, err)
	assert.Equal(t, "200.00", pricing.FormatMoney(d1.Total))
	assert.Equal(t, "0.00", pricing.FormatMoney(d.Total), "el borrador original no cambia")

	d2, err := d1.AppendItem(pricing.LineItem{ProductID: "p2", Quantity: dec("1.5"), UnitPrice: dec("50")})
	require.NoError(t, err)
	d3 := d2.WithAdjustments(pricing.Adjustments{ShippingFee: dec("10"), BankCharge: dec("5"), Discount: dec("20")})
	assert.Equal(t, "275.00", pricing.FormatMoney(d3.Subtotal))
	assert.Equal(t, "270.00", pricing.FormatMoney(d3.Total))

	d4, err := d3.RemoveItem(0)
	require.NoError(t, err)
	assert.Equal(t, "75.00", pricing.FormatMoney(d4.Subtotal))
	assert.Equal(t, "70.00", pricing.FormatMoney(d4.Total))
	assert.Len(t, d3.Items, 2)
}

// Cambiar solo el producto no pisa el precio que el usuario editó.
func TestDocument_CambioDeProductoConservaPrecio(t *testing.T) {
	d, err := pricing.NewDraft().ReplaceItem(0, pricing.LineItem{ProductID: "p1", Quantity: dec("3"), UnitPrice: dec("12.5")})
	require.NoError(t, err)

	item := d.Items[0]
	item.ProductID = "p2"
	item.ProductName = "Otro producto"
	d2, err := d.ReplaceItem(0, item)
	require.NoError(t, err)
	assert.Equal(t, "12.50", pricing.FormatMoney(d2.Items[0].UnitPrice))
	assert.Equal(t, "37.50", pricing.FormatMoney(d2.Items[0].LineTotal))
}

func TestDocument_LimitesDeItems(t *testing.T) {
	_, err := pricing.NewDraft().RemoveItem(0)
	assert.ErrorIs(t, err, pricing.ErrNoItems)

	_, err = pricing.NewDraft().ReplaceItem(3, pricing.LineItem{})
	assert.ErrorIs(t, err, pricing.ErrItemIndex)

	items := make([]pricing.LineItem, pricing.MaxItems)
	full := pricing.Recalculate(pricing.Document{Items: items})
	_, err = full.AppendItem(pricing.LineItem{})
	assert.ErrorIs(t, err, pricing.ErrTooManyItems)
}

func TestValidateItemCount(t *testing.T) {
	assert.ErrorIs(t, pricing.ValidateItemCount(0, 0), pricing.ErrNoItems)
	assert.NoError(t, pricing.ValidateItemCount(1, 0))
	assert.NoError(t, pricing.ValidateItemCount(300, 0))
	assert.ErrorIs(t, pricing.ValidateItemCount(301, 0), pricing.ErrTooManyItems)
	assert.ErrorIs(t, pricing.ValidateItemCount(11, 10), pricing.ErrTooManyItems)
}

func TestRecalculate_Idempotente(t *testing.T) {
	d := pricing.Recalculate(pricing.Document{
		Items:       []pricing.LineItem{{Quantity: dec("2.25"), UnitPrice: dec("19.999")}},
		Adjustments: pricing.Adjustments{Discount: dec("-1.005")},
	})
	again := pricing.Recalculate(d)
	assert.Equal(t, d.Total.String(), again.Total.String())
	assert.Equal(t, d.Items[0].LineTotal.String(), again.Items[0].LineTotal.String())
	assert.Equal(t, "2.3", pricing.FormatQuantity(d.Items[0].Quantity))
	assert.Equal(t, "20.00", pricing.FormatMoney(d.Items[0].UnitPrice))
	assert.Equal(t, "46.00", pricing.FormatMoney(d.Items[0].LineTotal))
	assert.Equal(t, "1.01", pricing.FormatMoney(d.Adjustments.Discount))
	assert.Equal(t, "44.99", pricing.FormatMoney(d.Total))
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ConversionRate(0, 5)))
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ConversionRate(-1, 5)))
	assert.Equal(t, "25.00", pricing.FormatMoney(pricing.ConversionRate(4, 1)))
	assert.Equal(t, "33.33", pricing.FormatMoney(pricing.ConversionRate(3, 1)))
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ConversionRate(3, 0)))
}

func TestShipmentProgress(t *testing.T) {
	assert.Equal(t, "25.00", pricing.FormatMoney(pricing.ShipmentProgress("10", "2.5")))
	assert.Equal(t, "0.00", pricing.FormatMoney(pricing.ShipmentProgress("0", "5")))
	assert.Equal(t, "100.00", pricing.FormatMoney(pricing.ShipmentProgress("10", "15")))
	assert.Equal(t, "33.33", pricing.FormatMoney(pricing.ShipmentProgress(3, 1)))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 5, pricing.DaysUntil(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, pricing.DaysUntil(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -3, pricing.DaysUntil(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), now))
}

func TestDaysUntil_ZonaDelLlamador(t *testing.T) {
	due := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) // columna DATE

	// 02:00 del 18 en Manila (UTC+8) es 18:00 del 17 en UTC: para quien
	// consulta la entrega es hoy.
	manila := time.FixedZone("PHT", 8*60*60)
	assert.Equal(t, 0, pricing.DaysUntil(due, time.Date(2026, 10, 18, 2, 0, 0, 0, manila)))
	assert.Equal(t, 1, pricing.DaysUntil(due, time.Date(2026, 10, 17, 23, 59, 0, 0, manila)))
	assert.Equal(t, -1, pricing.DaysUntil(due, time.Date(2026, 10, 19, 0, 30, 0, 0, manila)))

	// al oeste: 20:00 del 17 en UTC-5 sigue siendo el 17
	bogota := time.FixedZone("COT", -5*60*60)
	assert.Equal(t, 1, pricing.DaysUntil(due, time.Date(2026, 10, 17, 20, 0, 0, 0, bogota)))

	// una fecha de calendario guardada en otra zona no se corre de día
	dueLocal := time.Date(2026, 10, 18, 0, 0, 0, 0, bogota)
	assert.Equal(t, 0, pricing.DaysUntil(dueLocal, time.Date(2026, 10, 18, 2, 0, 0, 0, manila)))
}
