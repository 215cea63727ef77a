// Package cache caché de listas de precios en Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

var _ ports.PriceListCache = (*PriceListCache)(nil)

// PriceListCache guarda listas como JSON bajo pricelist:<company>:<code>.
// Con client nil todas las operaciones son no-op (Get siempre es miss).
type PriceListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPriceListCache construye la caché. ttl <= 0 = sin expiración.
func NewPriceListCache(client *redis.Client, ttl time.Duration) *PriceListCache {
	return &PriceListCache{client: client, ttl: ttl}
}

type cachedPriceList struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"companyId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Key clave Redis de una lista.
func Key(companyID, code string) string {
	return "pricelist:" + companyID + ":" + code
}

// Get devuelve nil, nil en un miss.
func (c *PriceListCache) Get(ctx context.Context, companyID, code string) (*entity.PriceList, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, Key(companyID, code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var v cachedPriceList
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &entity.PriceList{
		ID:          v.ID,
		CompanyID:   v.CompanyID,
		Code:        v.Code,
		Name:        v.Name,
		Multiplier:  v.Multiplier,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}, nil
}

// Set guarda la lista con el TTL configurado.
func (c *PriceListCache) Set(ctx context.Context, pl *entity.PriceList) error {
	if c == nil || c.client == nil || pl == nil {
		return nil
	}
	data, err := json.Marshal(cachedPriceList{
		ID:          pl.ID,
		CompanyID:   pl.CompanyID,
		Code:        pl.Code,
		Name:        pl.Name,
		Multiplier:  pl.Multiplier,
		Description: pl.Description,
		CreatedAt:   pl.CreatedAt,
		UpdatedAt:   pl.UpdatedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(pl.CompanyID, pl.Code), data, c.ttl).Err()
}

// Invalidate borra la lista de la caché.
func (c *PriceListCache) Invalidate(ctx context.Context, companyID, code string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, Key(companyID, code)).Err()
}
