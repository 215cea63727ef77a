package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

func TestFilterClause_SoloEmpresa(t *testing.T) {
	clause, args := filterClause("c1", repository.DocumentFilter{})
	assert.Equal(t, " WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"c1", 20, 0}, args)
}

func TestFilterClause_TodosLosFiltros(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	clause, args := filterClause("c1", repository.DocumentFilter{
		Status: "approved", CustomerID: "cu1", From: &from, To: &to, Limit: 50, Offset: 10,
	})
	assert.Equal(t, " WHERE company_id = $1 AND status = $2 AND customer_id = $3 AND created_at >= $4 AND created_at < $5"+
		" ORDER BY created_at DESC LIMIT $6 OFFSET $7", clause)
	assert.Equal(t, []any{"c1", "approved", "cu1", from, to, 50, 10}, args)
}

func TestPageLimit(t *testing.T) {
	assert.Equal(t, 20, pageLimit(0))
	assert.Equal(t, 20, pageLimit(500))
	assert.Equal(t, 35, pageLimit(35))
}

func TestViolatedConstraint(t *testing.T) {
	err := fmt.Errorf("insert job order: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_job_orders_sales_order"})
	assert.True(t, isUniqueViolation(err))
	assert.Equal(t, "uq_job_orders_sales_order", violatedConstraint(err))
	assert.Empty(t, violatedConstraint(errors.New("otro")))
}

func TestMigraciones_PagosYOrdenUnicaDeProduccion(t *testing.T) {
	up, err := migrationsFS.ReadFile("migrations/000002_payments_and_locks.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE UNIQUE INDEX IF NOT EXISTS uq_job_orders_sales_order ON job_orders (sales_order_id)")
	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS sales_order_payments")
	assert.Contains(t, string(up), "'paid'")

	down, err := migrationsFS.ReadFile("migrations/000002_payments_and_locks.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE IF EXISTS sales_order_payments")
}

// recordingQuerier guarda el SQL recibido; toda fila es ErrNoRows.
type recordingQuerier struct{ sql []string }

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = append(q.sql, sql)
	return nil, errors.New("sin filas")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return noRow{}
}

func (q *recordingQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func TestGetByIDForUpdate_BloqueaLaCabecera(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		table string
		get   func(Querier) (bool, error)
	}{
		{"cotización", "quotations", func(q Querier) (bool, error) {
			got, err := NewQuotationRepository(q).GetByIDForUpdate(ctx, "c1", "id")
			return got == nil, err
		}},
		{"orden de venta", "sales_orders", func(q Querier) (bool, error) {
			got, err := NewSalesOrderRepository(q).GetByIDForUpdate(ctx, "c1", "id")
			return got == nil, err
		}},
		{"orden de producción", "job_orders", func(q Querier) (bool, error) {
			got, err := NewJobOrderRepository(q).GetByIDForUpdate(ctx, "c1", "id")
			return got == nil, err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &recordingQuerier{}
			missing, err := tc.get(q)
			require.NoError(t, err)
			assert.True(t, missing)
			require.Len(t, q.sql, 1)
			assert.Contains(t, q.sql[0], "FROM "+tc.table)
			assert.True(t, strings.HasSuffix(strings.TrimSpace(q.sql[0]), "FOR UPDATE"), q.sql[0])
		})
	}

	q := &recordingQuerier{}
	_, err := NewJobOrderRepository(q).GetByID(ctx, "c1", "id")
	require.NoError(t, err)
	assert.NotContains(t, q.sql[0], "FOR UPDATE")
}
