package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// PriceListRepository listas de precios por empresa.
type PriceListRepository interface {
	Create(ctx context.Context, pl *entity.PriceList) error
	// GetByCode devuelve nil, nil si la lista no existe.
	GetByCode(ctx context.Context, companyID, code string) (*entity.PriceList, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.PriceList, error)
}
