package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo consecutivos por empresa/tipo/año con un upsert atómico.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo. El primero del año es 1.
func (r *SequenceRepo) Next(ctx context.Context, companyID, kind string, year int) (int, error) {
	var next int
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (company_id, kind, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, kind, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`, companyID, kind, year).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", kind, err)
	}
	return next, nil
}
