package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Cotización ───────────────────────────────────────────────────────────────

func TestQuotation_ApplyRecalculaYConservaIDs(t *testing.T) {
	q := &entity.Quotation{
		Items: []entity.DocumentItem{{ID: "it-1", DocumentID: "q-1", ProductID: "p1", Quantity: d("2"), UnitPrice: d("100")}},
	}
	doc := q.Document()
	doc, err := doc.AppendItem(pricing.LineItem{ProductID: "p2", Quantity: d("1.5"), UnitPrice: d("50")})
	require.NoError(t, err)
	doc = doc.WithAdjustments(pricing.Adjustments{ShippingFee: d("10"), BankCharge: d("5"), Discount: d("-20")})

	q.Apply(doc)
	require.Len(t, q.Items, 2)
	assert.Equal(t, "it-1", q.Items[0].ID)
	assert.Equal(t, "", q.Items[1].ID)
	assert.Equal(t, 2, q.Items[1].Position)
	assert.Equal(t, "275.00", pricing.FormatMoney(q.Subtotal))
	assert.Equal(t, "270.00", pricing.FormatMoney(q.Total))
	assert.Equal(t, "20.00", pricing.FormatMoney(q.Discount))
}

func TestQuotation_CheckRevisable(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.UTC)

	q := &entity.Quotation{Number: "QT-2026-0001", Status: entity.QuotationDraft, CreatedAt: now.Add(-2 * time.Hour)}
	assert.NoError(t, q.CheckRevisable(now))

	q.Status = entity.QuotationApproved
	assert.ErrorIs(t, q.CheckRevisable(now), domain.ErrLocked)

	q.Status = entity.QuotationConverted
	assert.ErrorIs(t, q.CheckRevisable(now), domain.ErrLocked)

	q.Status = entity.QuotationPending
	q.CreatedAt = now.AddDate(0, 0, -1)
	assert.ErrorIs(t, q.CheckRevisable(now), domain.ErrLocked)
}

func TestQuotation_CheckRevisableEnLaZonaDelUsuario(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	// creada 17:00 UTC del 20 = 01:00 del 21 en Manila
	q := &entity.Quotation{Number: "QT-2026-0002", Status: entity.QuotationPending,
		CreatedAt: time.Date(2026, 5, 20, 17, 0, 0, 0, time.UTC)}

	assert.NoError(t, q.CheckRevisable(time.Date(2026, 5, 21, 9, 0, 0, 0, manila)), "mismo día en Manila")
	assert.ErrorIs(t, q.CheckRevisable(time.Date(2026, 5, 22, 0, 10, 0, 0, manila)), domain.ErrLocked)
}

func TestQuotation_RevisionLabel(t *testing.T) {
	q := &entity.Quotation{Revision: 3}
	assert.Equal(t, "R3", q.RevisionLabel())
}

func TestValidStatus(t *testing.T) {
	assert.True(t, entity.ValidQuotationStatus("approved"))
	assert.False(t, entity.ValidQuotationStatus("APPROVED"))
	assert.True(t, entity.ValidSalesOrderStatus("in_production"))
	assert.False(t, entity.ValidSalesOrderStatus("shipped"))
	assert.True(t, entity.ValidRole("produccion"))
	assert.False(t, entity.ValidRole("bodeguero"))
}

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "QT-2026-0007", entity.FormatDocumentNumber("QT", 2026, 7))
	assert.Equal(t, "SO-2026-12345", entity.FormatDocumentNumber("SO", 2026, 12345))
}

// ── Orden de producción ──────────────────────────────────────────────────────

func TestJobOrder_Progreso(t *testing.T) {
	j := &entity.JobOrder{Items: []entity.JobOrderItem{
		{Quantity: d("10"), Shipped: d("2.5")},
		{Quantity: d("10"), Shipped: d("0")},
	}}
	assert.Equal(t, "12.50", pricing.FormatMoney(j.Progress()))
	assert.False(t, j.FullyShipped())
	assert.Equal(t, "7.5", pricing.FormatQuantity(j.Items[0].Balance()))

	j.Items[0].Shipped = d("10")
	j.Items[1].Shipped = d("10")
	assert.True(t, j.FullyShipped())
	assert.Equal(t, "100.00", pricing.FormatMoney(j.Progress()))

	assert.False(t, (&entity.JobOrder{}).FullyShipped())
}

// ── Cobros ───────────────────────────────────────────────────────────────────

func TestSalesOrder_SaldoYEstadoDeCobro(t *testing.T) {
	cases := []struct {
		name, total, paid string
		balance, status   string
	}{
		{"sin pagos", "100.00", "0", "0", entity.PaymentUnpaid},
		{"parcial", "100.00", "40.50", "59.50", entity.PaymentPartial},
		{"exacto", "100.00", "100.00", "0", entity.PaymentPaid},
		{"total cero sin pagos", "0", "0", "0", entity.PaymentUnpaid},
		{"pagado de más no da saldo negativo", "100.00", "120.00", "0", entity.PaymentPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &entity.SalesOrder{Total: d(tc.total), PaidAmount: d(tc.paid)}
			assert.True(t, o.Balance().Equal(d(tc.balance)), o.Balance().String())
			assert.Equal(t, tc.status, o.PaymentStatus())
		})
	}
}

func TestPayment_Reembolsable(t *testing.T) {
	p := &entity.Payment{Kind: entity.PaymentKindPayment, Amount: d("300"), Refunded: d("120")}
	assert.True(t, p.Refundable().Equal(d("180")))
	assert.True(t, p.Signed().Equal(d("300")))

	p.Refunded = d("300")
	assert.True(t, p.Refundable().IsZero())

	r := &entity.Payment{Kind: entity.PaymentKindRefund, Amount: d("50")}
	assert.True(t, r.Refundable().IsZero(), "un reembolso no se reembolsa")
	assert.True(t, r.Signed().Equal(d("-50")))
}
