package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo persiste órdenes de venta (cabecera + sales_order_items).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const salesOrderColumns = `id, company_id, customer_id, quotation_id, created_by, number, revision, status,
	due_date, notes, shipping_fee, bank_charge, discount, other_charges, subtotal, total, paid_amount,
	created_at, updated_at`

func scanSalesOrder(row interface{ Scan(...any) error }, extra ...any) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	dest := []any{
		&o.ID, &o.CompanyID, &o.CustomerID, &o.QuotationID, &o.CreatedBy, &o.Number, &o.Revision, &o.Status,
		&o.DueDate, &o.Notes, &o.ShippingFee, &o.BankCharge, &o.Discount, &o.OtherCharges,
		&o.Subtotal, &o.Total, &o.PaidAmount, &o.CreatedAt, &o.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return &o, err
}

// Create inserta cabecera y líneas. Una cotización solo genera una orden (índice único).
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_orders (`+salesOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		o.ID, o.CompanyID, o.CustomerID, o.QuotationID, o.CreatedBy, o.Number, o.Revision, o.Status,
		o.DueDate, o.Notes, o.ShippingFee, o.BankCharge, o.Discount, o.OtherCharges,
		o.Subtotal, o.Total, o.PaidAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden de venta %s", domain.ErrDuplicate, o.Number)
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return salesOrderItems.insertItems(ctx, r.q, o.ID, o.Items)
}

// UpdateStatus cambia solo el estado.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales_orders SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, status, at)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID cabecera con líneas; nil, nil si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, companyID, id string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetByIDForUpdate como GetByID pero con la cabecera bloqueada (SELECT ... FOR UPDATE).
func (r *SalesOrderRepo) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

// GetByQuotation orden generada desde la cotización; nil, nil si no hay.
func (r *SalesOrderRepo) GetByQuotation(ctx context.Context, companyID, quotationID string) (*entity.SalesOrder, error) {
	return r.getOne(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE company_id = $1 AND quotation_id = $2`, companyID, quotationID)
}

func (r *SalesOrderRepo) getOne(ctx context.Context, query, companyID, arg string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(ctx, query, companyID, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if o.Items, err = salesOrderItems.loadItems(ctx, r.q, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// List cabeceras filtradas con total para paginar.
func (r *SalesOrderRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.SalesOrder, int, error) {
	clause, args := filterClause(companyID, f)
	rows, err := r.q.Query(ctx, `SELECT `+salesOrderColumns+`, COUNT(*) OVER() FROM sales_orders`+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.SalesOrder
		total int
	)
	for rows.Next() {
		o, err := scanSalesOrder(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

// UpdatePaidAmount fija lo cobrado y el estado.
func (r *SalesOrderRepo) UpdatePaidAmount(ctx context.Context, companyID, id string, paid decimal.Decimal, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales_orders SET paid_amount = $3, status = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`,
		companyID, id, paid, status, at)
	if err != nil {
		return fmt.Errorf("update paid amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const paymentColumns = `p.id, p.company_id, p.sales_order_id, p.kind, p.refund_of, p.amount, p.method, p.reference,
	p.notes, p.paid_at, p.recorded_by, p.created_at`

// AddPayment inserta el movimiento. El CHECK de la tabla exige refund_of solo en reembolsos.
func (r *SalesOrderRepo) AddPayment(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_order_payments (id, company_id, sales_order_id, kind, refund_of, amount, method, reference,
			notes, paid_at, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.CompanyID, p.SalesOrderID, p.Kind, p.RefundOf, p.Amount, p.Method, p.Reference,
		p.Notes, p.PaidAt, p.RecordedBy, p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: orden o pago inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments movimientos de la orden con lo reembolsado de cada pago.
func (r *SalesOrderRepo) ListPayments(ctx context.Context, companyID, salesOrderID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+paymentColumns+`,
			COALESCE((SELECT SUM(rf.amount) FROM sales_order_payments rf WHERE rf.refund_of = p.id), 0)
		FROM sales_order_payments p
		WHERE p.company_id = $1 AND p.sales_order_id = $2
		ORDER BY p.paid_at DESC, p.created_at DESC`, companyID, salesOrderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.SalesOrderID, &p.Kind, &p.RefundOf, &p.Amount, &p.Method,
			&p.Reference, &p.Notes, &p.PaidAt, &p.RecordedBy, &p.CreatedAt, &p.Refunded); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
