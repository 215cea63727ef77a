package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo persiste cotizaciones (cabecera + quotation_items).
// Create y Update escriben en varias tablas: usarlo dentro de TxRunner.RunSales.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, company_id, customer_id, created_by, number, revision, status, price_list_code,
	valid_until, notes, shipping_fee, bank_charge, discount, other_charges, subtotal, total, created_at, updated_at`

func scanQuotation(row interface{ Scan(...any) error }, extra ...any) (*entity.Quotation, error) {
	var q entity.Quotation
	dest := []any{
		&q.ID, &q.CompanyID, &q.CustomerID, &q.CreatedBy, &q.Number, &q.Revision, &q.Status, &q.PriceListCode,
		&q.ValidUntil, &q.Notes, &q.ShippingFee, &q.BankCharge, &q.Discount, &q.OtherCharges,
		&q.Subtotal, &q.Total, &q.CreatedAt, &q.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return &q, err
}

// Create inserta cabecera y líneas.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotations (`+quotationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		q.ID, q.CompanyID, q.CustomerID, q.CreatedBy, q.Number, q.Revision, q.Status, q.PriceListCode,
		q.ValidUntil, q.Notes, q.ShippingFee, q.BankCharge, q.Discount, q.OtherCharges,
		q.Subtotal, q.Total, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de cotización %s", domain.ErrDuplicate, q.Number)
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return quotationItems.insertItems(ctx, r.q, q.ID, q.Items)
}

// Update reescribe la cabecera (revisión, ajustes, totales) y reemplaza las líneas.
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE quotations
		SET customer_id = $3, revision = $4, status = $5, price_list_code = $6, valid_until = $7, notes = $8,
		    shipping_fee = $9, bank_charge = $10, discount = $11, other_charges = $12,
		    subtotal = $13, total = $14, updated_at = $15
		WHERE company_id = $1 AND id = $2`,
		q.CompanyID, q.ID, q.CustomerID, q.Revision, q.Status, q.PriceListCode, q.ValidUntil, q.Notes,
		q.ShippingFee, q.BankCharge, q.Discount, q.OtherCharges, q.Subtotal, q.Total, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return quotationItems.replaceItems(ctx, r.q, q.ID, q.Items)
}

// UpdateStatus cambia solo el estado.
func (r *QuotationRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE quotations SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, status, at)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID cabecera con líneas; nil, nil si no existe.
func (r *QuotationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	return r.get(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetByIDForUpdate como GetByID con la cabecera bloqueada hasta el fin de la tx.
func (r *QuotationRepo) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	return r.get(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *QuotationRepo) get(ctx context.Context, query, companyID, id string) (*entity.Quotation, error) {
	q, err := scanQuotation(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if q.Items, err = quotationItems.loadItems(ctx, r.q, q.ID); err != nil {
		return nil, err
	}
	return q, nil
}

// List cabeceras filtradas, más el total de filas para paginar.
func (r *QuotationRepo) List(ctx context.Context, companyID string, f repository.DocumentFilter) ([]*entity.Quotation, int, error) {
	clause, args := filterClause(companyID, f)
	rows, err := r.q.Query(ctx, `SELECT `+quotationColumns+`, COUNT(*) OVER() FROM quotations`+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var (
		list  []*entity.Quotation
		total int
	)
	for rows.Next() {
		q, err := scanQuotation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, total, rows.Err()
}
