package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo implementación de PriceListRepository.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador.
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

const priceListColumns = `id, company_id, code, name, multiplier, description, created_at, updated_at`

func scanPriceList(row interface{ Scan(...any) error }) (*entity.PriceList, error) {
	var pl entity.PriceList
	err := row.Scan(&pl.ID, &pl.CompanyID, &pl.Code, &pl.Name, &pl.Multiplier, &pl.Description, &pl.CreatedAt, &pl.UpdatedAt)
	return &pl, err
}

// Create persiste una lista. Código repetido -> domain.ErrDuplicate.
func (r *PriceListRepo) Create(ctx context.Context, pl *entity.PriceList) error {
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO price_lists (`+priceListColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pl.ID, pl.CompanyID, pl.Code, pl.Name, pl.Multiplier, pl.Description, pl.CreatedAt, pl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert price list: %w", err)
	}
	return nil
}

// GetByCode busca la lista por código (ya en mayúsculas).
func (r *PriceListRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.PriceList, error) {
	pl, err := scanPriceList(r.q.QueryRow(ctx,
		`SELECT `+priceListColumns+` FROM price_lists WHERE company_id = $1 AND code = $2`, companyID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price list: %w", err)
	}
	return pl, nil
}

// ListByCompany todas las listas de la empresa.
func (r *PriceListRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.PriceList, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+priceListColumns+` FROM price_lists WHERE company_id = $1 ORDER BY multiplier DESC, code`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceList
	for rows.Next() {
		pl, err := scanPriceList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price list: %w", err)
		}
		list = append(list, pl)
	}
	return list, rows.Err()
}
