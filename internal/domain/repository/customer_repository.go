package repository

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Todas las lecturas van acotadas por empresa.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Customer, error)
}
