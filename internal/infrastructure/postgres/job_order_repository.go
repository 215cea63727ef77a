package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.JobOrderRepository = (*JobOrderRepo)(nil)

// JobOrderRepo persiste órdenes de producción, sus líneas y despachos.
type JobOrderRepo struct {
	q Querier
}

// NewJobOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobOrderRepository(q Querier) *JobOrderRepo {
	return &JobOrderRepo{q: q}
}

const jobOrderColumns = `id, company_id, sales_order_id, customer_id, created_by, number, status, due_date,
	instructions, created_at, updated_at`

func scanJobOrder(row interface{ Scan(...any) error }, extra ...any) (*entity.JobOrder, error) {
	var j entity.JobOrder
	dest := []any{
		&j.ID, &j.CompanyID, &j.SalesOrderID, &j.CustomerID, &j.CreatedBy, &j.Number, &j.Status, &j.DueDate,
		&j.Instructions, &j.CreatedAt, &j.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return &j, err
}

// Create inserta cabecera y líneas.
func (r *JobOrderRepo) Create(ctx context.Context, j *entity.JobOrder) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_orders (`+jobOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.CompanyID, j.SalesOrderID, j.CustomerID, j.CreatedBy, j.Number, j.Status, j.DueDate,
		j.Instructions, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "uq_job_orders_sales_order" {
				return fmt.Errorf("%w: la orden de venta ya tiene orden de producción", domain.ErrConflict)
			}
			return fmt.Errorf("%w: orden de producción %s", domain.ErrDuplicate, j.Number)
		}
		return fmt.Errorf("insert job order: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range j.Items {
		it := &j.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.JobOrderID = j.ID
		it.Position = i + 1
		batch.Queue(`
			INSERT INTO job_order_items (id, job_order_id, position, product_id, product_name, specification, quantity, shipped)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, j.ID, it.Position, it.ProductID, it.ProductName, it.Specification, it.Quantity, it.Shipped)
	}
	br := r.q.SendBatch(ctx, batch)
	for range j.Items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert job order item: %w", err)
		}
	}
	return br.Close()
}

// GetByID cabecera con líneas; nil, nil si no existe.
func (r *JobOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.JobOrder, error) {
	return r.get(ctx, `SELECT `+jobOrderColumns+` FROM job_orders WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetByIDForUpdate bloquea la cabecera antes de leer las líneas, así dos despachos
// concurrentes sobre la misma orden se serializan y el segundo ve el shipped del primero.
func (r *JobOrderRepo) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.JobOrder, error) {
	return r.get(ctx, `SELECT `+jobOrderColumns+` FROM job_orders WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *JobOrderRepo) get(ctx context.Context, query, companyID, id string) (*entity.JobOrder, error) {
	j, err := scanJobOrder(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job order: %w", err)
	}
	if j.Items, err = r.loadItems(ctx, j.ID); err != nil {
		return nil, err
	}
	return j, nil
}

func (r *JobOrderRepo) loadItems(ctx context.Context, jobOrderID string) ([]entity.JobOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, job_order_id, position, product_id, product_name, specification, quantity, shipped
		FROM job_order_items WHERE job_order_id = $1 ORDER BY position`, jobOrderID)
	if err != nil {
		return nil, fmt.Errorf("list job order items: %w", err)
	}
	defer rows.Close()
	var items []entity.JobOrderItem
	for rows.Next() {
		var it entity.JobOrderItem
		if err := rows.Scan(&it.ID, &it.JobOrderID, &it.Position, &it.ProductID, &it.ProductName,
			&it.Specification, &it.Quantity, &it.Shipped); err != nil {
			return nil, fmt.Errorf("scan job order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List cabeceras con sus líneas (para calcular avance en el listado).
func (r *JobOrderRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.JobOrder, int, error) {
	clause, args := filterClause(companyID, f)
	rows, err := r.q.Query(ctx, `SELECT `+jobOrderColumns+`, COUNT(*) OVER() FROM job_orders`+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list job orders: %w", err)
	}
	var (
		list  []*entity.JobOrder
		total int
	)
	for rows.Next() {
		j, err := scanJobOrder(rows, &total)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan job order: %w", err)
		}
		list = append(list, j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list job orders: %w", err)
	}
	for _, j := range list {
		if j.Items, err = r.loadItems(ctx, j.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// AddShipment registra el despacho y acumula shipped en la línea.
// El CHECK shipped <= quantity de la tabla es la última barrera contra sobre-despacho.
func (r *JobOrderRepo) AddShipment(ctx context.Context, s *entity.Shipment) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE job_order_items SET shipped = shipped + $3
		WHERE job_order_id = $1 AND id = $2 AND shipped + $3 <= quantity`,
		s.JobOrderID, s.ItemID, s.Quantity)
	if err != nil {
		return fmt.Errorf("update shipped: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: el despacho supera la cantidad pendiente", domain.ErrInvalidInput)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO job_order_shipments (id, job_order_id, item_id, quantity, shipped_at, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.JobOrderID, s.ItemID, s.Quantity, s.ShippedAt, s.RecordedBy)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado.
func (r *JobOrderRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE job_orders SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, status, at)
	if err != nil {
		return fmt.Errorf("update job order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
