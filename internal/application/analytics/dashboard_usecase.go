// Package analytics contiene el caso de uso del resumen del dashboard comercial.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

const dashboardUrgentJobOrders = 5 // órdenes de producción en el widget

// DashboardUseCase resumen del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Las métricas
// derivadas (conversión, avance, días) se calculan aquí y no se persisten.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	currency      string
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, currency string) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, currency: currency, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO de la empresa.
//
// Cinco consultas en paralelo:
//  1. CountQuotations(mes)
//  2. CountSalesOrders(mes)
//  3. SumSalesOrderTotals(mes)
//  4. SumPayments(mes): cobrado y reembolsado
//  5. OpenJobOrders(top 5 por fecha de entrega)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Mes en curso: día 1 a las 00:00 hasta mañana 00:00 (exclusivo)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	type countResult struct {
		n   int64
		err error
	}
	type sumResult struct {
		total decimal.Decimal
		err   error
	}
	type paymentsResult struct {
		received decimal.Decimal
		refunded decimal.Decimal
		err      error
	}
	type jobsResult struct {
		jobs []*entity.JobOrder
		err  error
	}

	quotesCh := make(chan countResult, 1)
	ordersCh := make(chan countResult, 1)
	salesCh := make(chan sumResult, 1)
	paymentsCh := make(chan paymentsResult, 1)
	jobsCh := make(chan jobsResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountQuotations(ctx, companyID, monthStart, monthEnd)
		quotesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountSalesOrders(ctx, companyID, monthStart, monthEnd)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		total, err := uc.analyticsRepo.SumSalesOrderTotals(ctx, companyID, monthStart, monthEnd)
		salesCh <- sumResult{total, err}
	}()
	go func() {
		received, refunded, err := uc.analyticsRepo.SumPayments(ctx, companyID, monthStart, monthEnd)
		paymentsCh <- paymentsResult{received, refunded, err}
	}()
	go func() {
		jobs, err := uc.analyticsRepo.OpenJobOrders(ctx, companyID, dashboardUrgentJobOrders)
		jobsCh <- jobsResult{jobs, err}
	}()

	quotes := <-quotesCh
	orders := <-ordersCh
	sales := <-salesCh
	payments := <-paymentsCh
	jobs := <-jobsCh

	if quotes.err != nil {
		return nil, fmt.Errorf("dashboard: cotizaciones del mes: %w", quotes.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes del mes: %w", orders.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", sales.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("dashboard: cobros del mes: %w", payments.err)
	}
	if jobs.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes de producción: %w", jobs.err)
	}

	urgent := make([]dto.JobOrderSummaryDTO, 0, len(jobs.jobs))
	for _, j := range jobs.jobs {
		urgent = append(urgent, dto.JobOrderSummaryDTO{
			ID:               j.ID,
			Number:           j.Number,
			Status:           j.Status,
			DueDate:          j.DueDate.Format(dto.DateLayout),
			DaysUntilDue:     pricing.DaysUntil(j.DueDate, now),
			ShipmentProgress: pricing.FormatMoney(j.Progress()),
		})
	}

	received := pricing.NormalizeMoney(payments.received)
	refunded := pricing.NormalizeMoney(payments.refunded)

	return &dto.DashboardSummaryDTO{
		Period:          now.Format("2006-01"),
		QuotationCount:  quotes.n,
		SalesOrderCount: orders.n,
		ConversionRate:  pricing.FormatMoney(pricing.ConversionRate(quotes.n, orders.n)),
		MonthSales:      pricing.FormatMoney(pricing.NormalizeMoney(sales.total)),
		MonthCollected:  pricing.FormatMoney(received),
		MonthRefunded:   pricing.FormatMoney(refunded),
		MonthNetCash:    pricing.FormatMoney(received.Sub(refunded)),
		Currency:        uc.currency,
		UrgentJobOrders: urgent,
	}, nil
}
