package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// itemTable describe una tabla de líneas (quotation_items, sales_order_items).
type itemTable struct {
	name string
	fk   string
}

var (
	quotationItems  = itemTable{name: "quotation_items", fk: "quotation_id"}
	salesOrderItems = itemTable{name: "sales_order_items", fk: "sales_order_id"}
)

// insertItems inserta todas las líneas en un solo batch y fija ID, documento y posición.
func (t itemTable) insertItems(ctx context.Context, q Querier, docID string, items []entity.DocumentItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO ` + t.name + ` (id, ` + t.fk + `, position, product_id, product_name, specification, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.DocumentID = docID
		it.Position = i + 1
		batch.Queue(query, it.ID, docID, it.Position, it.ProductID, it.ProductName, it.Specification,
			it.Quantity, it.UnitPrice, it.LineTotal)
	}
	br := q.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert %s: %w", t.name, err)
		}
	}
	return br.Close()
}

func (t itemTable) replaceItems(ctx context.Context, q Querier, docID string, items []entity.DocumentItem) error {
	if _, err := q.Exec(ctx, `DELETE FROM `+t.name+` WHERE `+t.fk+` = $1`, docID); err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	return t.insertItems(ctx, q, docID, items)
}

func (t itemTable) loadItems(ctx context.Context, q Querier, docID string) ([]entity.DocumentItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, `+t.fk+`, position, product_id, product_name, specification, quantity, unit_price, line_total
		FROM `+t.name+` WHERE `+t.fk+` = $1 ORDER BY position`, docID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	defer rows.Close()
	var items []entity.DocumentItem
	for rows.Next() {
		var it entity.DocumentItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.Position, &it.ProductID, &it.ProductName,
			&it.Specification, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// filterClause arma el WHERE de listados a partir de company_id y DocumentFilter.
// Devuelve la cláusula y los argumentos; limit/offset quedan al final.
func filterClause(companyID string, f repository.DocumentFilter) (string, []any) {
	conds := []string{"company_id = $1"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}
	if f.Status != "" {
		add("status = ?", f.Status)
	}
	if f.CustomerID != "" {
		add("customer_id = ?", f.CustomerID)
	}
	if f.From != nil {
		add("created_at >= ?", *f.From)
	}
	if f.To != nil {
		add("created_at < ?", *f.To)
	}
	args = append(args, pageLimit(f.Limit), f.Offset)
	n := len(args)
	clause := " WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(n-1) + " OFFSET $" + strconv.Itoa(n)
	return clause, args
}
