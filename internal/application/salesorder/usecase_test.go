package salesorder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/salesorder"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/testutil/memstore"
)

const (
	companyID  = "11111111-1111-1111-1111-111111111111"
	customerID = "22222222-2222-2222-2222-222222222222"
	userID     = "33333333-3333-3333-3333-333333333333"
)

var today = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*salesorder.UseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{ID: companyID, Name: "Acme"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: customerID, CompanyID: companyID, Name: "Cliente Uno"}))
	uc := salesorder.NewUseCase(
		store.SalesOrders(), store.Customers(), store.Companies(), store, nil, nil,
		salesorder.Config{Prefix: "SO", MaxItems: 300, Currency: "PHP"}, nil,
	).WithClock(func() time.Time { return today })
	return uc, store
}

// seedQuotation guarda una cotización R2 con 2 líneas en el estado indicado.
func seedQuotation(t *testing.T, store *memstore.Store, status string) *entity.Quotation {
	t.Helper()
	q := &entity.Quotation{
		ID:         "q-1",
		CompanyID:  companyID,
		CustomerID: customerID,
		Number:     "QT-2026-0007",
		Revision:   2,
		Status:     status,
		Notes:      "entregar en bodega",
		CreatedAt:  today,
	}
	q.Apply(pricing.Document{
		Items: []pricing.LineItem{
			{ProductID: "p1", ProductName: "Tarjetas", Quantity: dec("2.0"), UnitPrice: dec("135.00")},
			{ProductID: "p2", ProductName: "Stickers", Quantity: dec("10.0"), UnitPrice: dec("3.25")},
		},
		Adjustments: pricing.Adjustments{ShippingFee: dec("50"), Discount: dec("20")},
	})
	require.NoError(t, store.Quotations().Create(context.Background(), q))
	return q
}

func TestCreateFromQuotation_ConvierteAprobada(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	q := seedQuotation(t, store, entity.QuotationApproved)

	so, err := uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{DueDate: "2026-10-24"})
	require.NoError(t, err)

	assert.Equal(t, "SO-2026-0001", so.Number)
	assert.Equal(t, "R2", so.Revision, "conserva la revisión de la cotización")
	assert.Equal(t, entity.SalesOrderPending, so.Status)
	assert.Equal(t, q.ID, so.QuotationID)
	assert.Equal(t, "entregar en bodega", so.Notes)
	assert.Equal(t, "302.50", so.Subtotal)
	assert.Equal(t, "332.50", so.Total)
	require.NotNil(t, so.DaysUntilDue)
	assert.Equal(t, 7, *so.DaysUntilDue)
	assert.Len(t, so.Items, 2)

	got, err := store.Quotations().GetByID(ctx, companyID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationConverted, got.Status)
}

func TestCreateFromQuotation_SoloAprobadas(t *testing.T) {
	for _, status := range []string{entity.QuotationDraft, entity.QuotationPending, entity.QuotationRejected} {
		t.Run(status, func(t *testing.T) {
			uc, store := setup(t)
			q := seedQuotation(t, store, status)
			_, err := uc.CreateFromQuotation(context.Background(), companyID, userID, q.ID, dto.ConvertQuotationRequest{})
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestCreateFromQuotation_NoSeConvierteDosVeces(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	q := seedQuotation(t, store, entity.QuotationApproved)

	_, err := uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{})
	require.NoError(t, err)
	_, err = uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateFromQuotation(ctx, companyID, userID, "no-existe", dto.ConvertQuotationRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateFromQuotation_ConcurrenteConvierteUnaVez(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	q := seedQuotation(t, store, entity.QuotationApproved)

	const workers = 5
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)

	list, err := uc.List(ctx, companyID, dto.DocumentListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}

func TestCreateFromQuotation_RollbackSiFallaLaOrden(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	q := seedQuotation(t, store, entity.QuotationApproved)
	boom := errors.New("db caída")
	store.FailOn = map[string]error{"salesorders.create": boom}

	_, err := uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{})
	require.ErrorIs(t, err, boom)

	got, err := store.Quotations().GetByID(ctx, companyID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationApproved, got.Status)

	// El consecutivo tampoco se consume
	store.FailOn = nil
	so, err := uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{})
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-0001", so.Number)
}

func TestCreate_OrdenDirecta(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	so, err := uc.Create(ctx, companyID, userID, dto.CreateSalesOrderRequest{
		CustomerID: customerID,
		Items: []dto.LineItemRequest{
			{ProductID: "p1", ProductName: "Tarjetas", Quantity: pricing.RawOf("4"), UnitPrice: pricing.RawOf("$12.50")},
		},
		AdjustmentsRequest: dto.AdjustmentsRequest{BankCharge: pricing.RawOf("15"), Others: pricing.RawOf("abc")},
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-0001", so.Number)
	assert.Equal(t, "R1", so.Revision)
	assert.Equal(t, "Cliente Uno", so.CustomerName)
	assert.Equal(t, "50.00", so.Subtotal)
	assert.Equal(t, "0.00", so.Others)
	assert.Equal(t, "65.00", so.Total)
	assert.Nil(t, so.DaysUntilDue)
	assert.Empty(t, so.QuotationID)

	_, err = uc.Create(ctx, companyID, userID, dto.CreateSalesOrderRequest{CustomerID: customerID})
	assert.ErrorIs(t, err, pricing.ErrNoItems)
}

func TestUpdateStatus_EstadosConocidos(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	q := seedQuotation(t, store, entity.QuotationApproved)
	so, err := uc.CreateFromQuotation(ctx, companyID, userID, q.ID, dto.ConvertQuotationRequest{})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateStatus(ctx, companyID, so.ID, "shipped"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateStatus(ctx, companyID, so.ID, entity.SalesOrderPaid), domain.ErrInvalidInput, "paid solo lo asignan los pagos")
	require.NoError(t, uc.UpdateStatus(ctx, companyID, so.ID, entity.SalesOrderConfirmed))

	got, err := uc.Get(ctx, companyID, so.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesOrderConfirmed, got.Status)

	list, err := uc.List(ctx, companyID, dto.DocumentListQuery{Status: entity.SalesOrderConfirmed})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
}
