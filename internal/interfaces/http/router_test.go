package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/joborder"
	"github.com/jhoicas/Cotizador-api/internal/application/payment"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
	"github.com/jhoicas/Cotizador-api/internal/application/salesorder"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	infrapdf "github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/internal/testutil/memstore"
)

// newAPI arma la API completa sobre el store en memoria, con la empresa de prueba creada.
func newAPI(t *testing.T) (*fiber.App, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{
		ID: testCompanyID, Name: "Acme Printing", Status: "active",
	}))

	pdf := infrapdf.NewMarotoPDFGenerator()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		CompanyUC:  usecase.NewCompanyUseCase(store.Companies()),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers()),
		ProductUC:  usecase.NewProductUseCase(store.Products()),
		PricingUC:  pricing.NewUseCase(store.PriceLists(), store.Products(), store.Customers(), nil, nil, "PHP", nil),
		QuotationUC: quotation.NewUseCase(store.Quotations(), store.Customers(), store.Companies(), store, pdf, nil,
			quotation.Config{Prefix: "QT", MaxItems: 300, Currency: "PHP"}, nil),
		SalesOrderUC: salesorder.NewUseCase(store.SalesOrders(), store.Customers(), store.Companies(), store, pdf, nil,
			salesorder.Config{Prefix: "SO", MaxItems: 300, Currency: "PHP"}, nil),
		JobOrderUC:  joborder.NewUseCase(store.JobOrders(), store, "JO", nil),
		PaymentUC:   payment.NewUseCase(store.SalesOrders(), store, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Analytics(), "PHP"),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
	})
	return app, store
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestFlujo_CotizacionOrdenProduccionDespacho(t *testing.T) {
	app, _ := newAPI(t)
	ventas := tokenForRole(t, entity.RoleVentas)
	produccion := tokenForRole(t, entity.RoleProduccion)

	resp := call(t, app, http.MethodPost, "/api/customers", ventas, map[string]interface{}{
		"name": "Cliente Uno", "priceList": "premier",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var customer dto.CustomerResponse
	decode(t, resp, &customer)
	assert.Equal(t, "PREMIER", customer.PriceList)

	// Cantidades y precios como string o número; el total del cliente se ignora
	resp = call(t, app, http.MethodPost, "/api/quotations", ventas, map[string]interface{}{
		"customerId": customer.ID,
		"items": []map[string]interface{}{
			{"productId": "p1", "productName": "Tarjetas", "quantity": "2", "unitPrice": "135"},
			{"productId": "p2", "productName": "Volantes", "quantity": 1.25, "unitPrice": "1,000.50"},
		},
		"shippingFee": 50,
		"discount":    "-20",
		"total":       "1.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var q dto.QuotationResponse
	decode(t, resp, &q)
	assert.Equal(t, "1570.65", q.Subtotal)
	assert.Equal(t, "20.00", q.Discount)
	assert.Equal(t, "1600.65", q.Total)
	assert.Equal(t, "PREMIER", q.PriceList)

	resp = call(t, app, http.MethodGet, "/api/quotations/"+q.ID+"/pdf", ventas, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), q.Number+"-R1.pdf")
	pdf, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = call(t, app, http.MethodPatch, "/api/quotations/"+q.ID+"/status", ventas, dto.StatusRequest{Status: "approved"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodPut, "/api/quotations/"+q.ID, ventas, map[string]interface{}{
		"customerId": customer.ID,
		"items":      []map[string]interface{}{{"productName": "X", "quantity": 1, "unitPrice": 1}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LOCKED", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/convert", ventas, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var so dto.SalesOrderResponse
	decode(t, resp, &so)
	assert.Equal(t, "1600.65", so.Total)
	assert.Equal(t, q.ID, so.QuotationID)

	resp = call(t, app, http.MethodPost, "/api/quotations/"+q.ID+"/convert", ventas, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Solo producción envía a producción
	jobReq := dto.CreateJobOrderRequest{SalesOrderID: so.ID, DueDate: "2030-01-15"}
	resp = call(t, app, http.MethodPost, "/api/job-orders", ventas, jobReq)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/job-orders", produccion, jobReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var jo dto.JobOrderResponse
	decode(t, resp, &jo)
	require.Len(t, jo.Items, 2)

	resp = call(t, app, http.MethodPost, "/api/job-orders/"+jo.ID+"/shipments", produccion, map[string]interface{}{
		"itemId": jo.Items[0].ID, "quantity": "5",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no se despacha más que el saldo")
	assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/job-orders/"+jo.ID+"/shipments", produccion, map[string]interface{}{
		"itemId": jo.Items[0].ID, "quantity": "2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &jo)
	assert.Equal(t, entity.JobOrderInProduction, jo.Status)
	assert.Equal(t, "0.0", jo.Items[0].Balance)

	resp = call(t, app, http.MethodGet, "/api/sales-orders/"+so.ID, ventas, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &so)
	assert.Equal(t, entity.SalesOrderInProduction, so.Status)
}

func TestQuotations_ErroresDeEntrada(t *testing.T) {
	app, _ := newAPI(t)
	ventas := tokenForRole(t, entity.RoleVentas)

	resp := call(t, app, http.MethodPost, "/api/quotations", ventas, "{no es json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/quotations", ventas, map[string]interface{}{"customerId": "no-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, "/api/quotations", ventas, map[string]interface{}{
		"customerId": "99999999-9999-9999-9999-999999999999",
		"items":      []map[string]interface{}{{"productName": "X", "quantity": 1, "unitPrice": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/quotations/no-existe", ventas, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/quotations?status=archivada", ventas, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/quotations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/quotations", tokenForRole(t, entity.RoleProduccion), map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPricing_ListasResolverYCalcular(t *testing.T) {
	app, _ := newAPI(t)
	admin := tokenForRole(t, entity.RoleAdmin)
	ventas := tokenForRole(t, entity.RoleVentas)

	resp := call(t, app, http.MethodPost, "/api/products", admin, map[string]interface{}{
		"sku": "bc-001", "name": "Tarjetas", "basePrice": "39.99",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product dto.ProductResponse
	decode(t, resp, &product)
	assert.Equal(t, "BC-001", product.SKU)

	listReq := map[string]interface{}{"code": "PREMIER", "name": "Premier", "multiplier": "0.8333"}
	resp = call(t, app, http.MethodPost, "/api/price-lists", ventas, listReq)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/price-lists", admin, listReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/price-lists", admin, listReq)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/pricing/resolve", ventas, dto.ResolvePriceRequest{
		ProductID: product.ID, PriceList: "premier",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var price dto.ResolvedPriceResponse
	decode(t, resp, &price)
	assert.Equal(t, "33.32", price.Price)

	resp = call(t, app, http.MethodPost, "/api/pricing/calculate", ventas, map[string]interface{}{
		"items":    []map[string]interface{}{{"quantity": "3", "unitPrice": "abc"}, {"quantity": -2, "unitPrice": 10}},
		"others":   "12.345",
		"discount": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var calc dto.CalculateResponse
	decode(t, resp, &calc)
	assert.Equal(t, "0.00", calc.Subtotal)
	assert.Equal(t, "12.35", calc.Others)
	assert.Equal(t, "10.35", calc.Total)
}

func TestAuth_RegistroLoginYDashboard(t *testing.T) {
	app, _ := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "Ana@Acme.com", Password: "secreto123", CompanyID: testCompanyID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Email: "ana@acme.com", Password: "secreto123", CompanyID: testCompanyID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@acme.com", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@acme.com", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decode(t, resp, &login)
	assert.Equal(t, entity.RoleVentas, login.User.Role)

	resp = call(t, app, http.MethodGet, "/api/dashboard/summary", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.DashboardSummaryDTO
	decode(t, resp, &summary)
	assert.Equal(t, int64(0), summary.QuotationCount)
	assert.Equal(t, "PHP", summary.Currency)
}

func TestPagos_CobroParcialTotalYReembolso(t *testing.T) {
	app, store := newAPI(t)
	ventas := tokenForRole(t, entity.RoleVentas)
	admin := tokenForRole(t, entity.RoleAdmin)

	require.NoError(t, store.SalesOrders().Create(context.Background(), &entity.SalesOrder{
		ID: "so-pagos", CompanyID: testCompanyID, Number: "SO-2026-0001", Status: entity.SalesOrderConfirmed,
		Total: decimal.RequireFromString("1000.00"), CreatedAt: time.Now(),
	}))
	base := "/api/sales-orders/so-pagos/payments"

	resp := call(t, app, http.MethodPost, base, ventas, map[string]interface{}{"amount": "400.004", "method": "GCash"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first dto.PaymentResultResponse
	decode(t, resp, &first)
	assert.Equal(t, "400.00", first.Payment.Amount)
	assert.Equal(t, "gcash", first.Payment.Method)
	assert.Equal(t, "600.00", first.Order.Balance)
	assert.Equal(t, entity.PaymentPartial, first.Order.PaymentStatus)

	resp = call(t, app, http.MethodPost, base, ventas, map[string]interface{}{"amount": 600.01})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "no se cobra más que el saldo")
	assert.Equal(t, "INVALID_INPUT", errorCode(t, resp))

	resp = call(t, app, http.MethodPost, base, ventas, map[string]interface{}{"amount": "-5"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPost, base, ventas, map[string]interface{}{"amount": "600"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var second dto.PaymentResultResponse
	decode(t, resp, &second)
	assert.Equal(t, entity.SalesOrderPaid, second.Order.Status)
	assert.Equal(t, "0.00", second.Order.Balance)

	resp = call(t, app, http.MethodPost, base, ventas, map[string]interface{}{"amount": "1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "orden ya pagada")

	// Reembolso: solo admin
	refund := base + "/" + first.Payment.ID + "/refund"
	resp = call(t, app, http.MethodPost, refund, ventas, map[string]interface{}{"amount": "100"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, app, http.MethodPost, refund, admin, map[string]interface{}{"amount": "400.01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = call(t, app, http.MethodPost, refund, admin, map[string]interface{}{"amount": "100"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ref dto.PaymentResultResponse
	decode(t, resp, &ref)
	assert.Equal(t, entity.PaymentKindRefund, ref.Payment.Kind)
	assert.Equal(t, first.Payment.ID, ref.Payment.RefundOf)
	assert.Equal(t, entity.SalesOrderConfirmed, ref.Order.Status)
	assert.Equal(t, "100.00", ref.Order.Balance)

	resp = call(t, app, http.MethodGet, base, ventas, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.PaymentListResponse
	decode(t, resp, &list)
	assert.Len(t, list.Items, 3)
	assert.Equal(t, "900.00", list.Order.PaidAmount)

	resp = call(t, app, http.MethodGet, "/api/sales-orders/so-pagos", ventas, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var so dto.SalesOrderResponse
	decode(t, resp, &so)
	assert.Equal(t, "900.00", so.PaidAmount)
	assert.Equal(t, "100.00", so.Balance)

	resp = call(t, app, http.MethodGet, "/api/sales-orders/no-existe/payments", ventas, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsuarios_SoloAdminAsignaRoles(t *testing.T) {
	app, _ := newAPI(t)
	admin := tokenForRole(t, entity.RoleAdmin)
	ventas := tokenForRole(t, entity.RoleVentas)

	// el registro público ignora el rol pedido
	resp := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "intruso@acme.com", "password": "secreto123", "companyId": testCompanyID, "role": "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered dto.UserResponse
	decode(t, resp, &registered)
	assert.Equal(t, entity.RoleVentas, registered.Role)

	userReq := map[string]interface{}{"email": "planta@acme.com", "password": "secreto123", "role": "produccion"}
	resp = call(t, app, http.MethodPost, "/api/users", "", userReq)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/users", ventas, userReq)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/users", admin, userReq)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.UserResponse
	decode(t, resp, &created)
	assert.Equal(t, entity.RoleProduccion, created.Role)
	assert.Equal(t, testCompanyID, created.CompanyID, "empresa del token")

	resp = call(t, app, http.MethodPost, "/api/users", admin, map[string]interface{}{"email": "x@acme.com", "password": "secreto123", "role": "root"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, "/api/users/"+registered.ID+"/role", ventas, dto.UpdateRoleRequest{Role: entity.RoleAdmin})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, app, http.MethodPatch, "/api/users/"+registered.ID+"/role", admin, dto.UpdateRoleRequest{Role: entity.RoleAdmin})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var promoted dto.UserResponse
	decode(t, resp, &promoted)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)
}
