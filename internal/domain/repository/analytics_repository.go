package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	CountQuotations(ctx context.Context, companyID string, from, to time.Time) (int64, error)
	CountSalesOrders(ctx context.Context, companyID string, from, to time.Time) (int64, error)
	// SumSalesOrderTotals suma total de órdenes no canceladas; 0 si no hay.
	SumSalesOrderTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	// SumPayments cobros y reembolsos registrados en [from, to).
	SumPayments(ctx context.Context, companyID string, from, to time.Time) (received, refunded decimal.Decimal, err error)
	// OpenJobOrders órdenes de producción no completadas, por fecha de entrega ascendente, con líneas.
	OpenJobOrders(ctx context.Context, companyID string, limit int) ([]*entity.JobOrder, error)
}
