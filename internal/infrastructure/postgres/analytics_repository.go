package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountQuotations cotizaciones creadas en [from, to).
func (r *AnalyticsRepo) CountQuotations(ctx context.Context, companyID string, from, to time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM quotations
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3`, companyID, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count quotations: %w", err)
	}
	return n, nil
}

// CountSalesOrders órdenes de venta no canceladas creadas en [from, to).
func (r *AnalyticsRepo) CountSalesOrders(ctx context.Context, companyID string, from, to time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM sales_orders
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3 AND status <> 'cancelled'`,
		companyID, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}

// SumSalesOrderTotals suma de totales; la suma se hace en NUMERIC, nunca en float.
func (r *AnalyticsRepo) SumSalesOrderTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM sales_orders
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3 AND status <> 'cancelled'`,
		companyID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales orders: %w", err)
	}
	return sum, nil
}

// SumPayments cobrado y reembolsado por fecha de pago.
func (r *AnalyticsRepo) SumPayments(ctx context.Context, companyID string, from, to time.Time) (received, refunded decimal.Decimal, err error) {
	err = r.q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'payment'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'refund'), 0)
		FROM sales_order_payments
		WHERE company_id = $1 AND paid_at >= $2 AND paid_at < $3`,
		companyID, from, to).Scan(&received, &refunded)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return received, refunded, nil
}

// OpenJobOrders órdenes de producción abiertas, la entrega más próxima primero.
func (r *AnalyticsRepo) OpenJobOrders(ctx context.Context, companyID string, limit int) ([]*entity.JobOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+jobOrderColumns+` FROM job_orders
		WHERE company_id = $1 AND status <> 'completed'
		ORDER BY due_date, number LIMIT $2`, companyID, pageLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("open job orders: %w", err)
	}
	var list []*entity.JobOrder
	for rows.Next() {
		j, err := scanJobOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan job order: %w", err)
		}
		list = append(list, j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("open job orders: %w", err)
	}
	jobs := NewJobOrderRepository(r.q)
	for _, j := range list {
		if j.Items, err = jobs.loadItems(ctx, j.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}
