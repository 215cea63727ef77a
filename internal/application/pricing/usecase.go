package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	core "github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// UseCase listas de precios, resolución de precio por producto y vista previa de totales.
type UseCase struct {
	priceLists repository.PriceListRepository
	products   repository.ProductRepository
	customers  repository.CustomerRepository
	cache      ports.PriceListCache
	recorder   ports.RecalcRecorder
	currency   string
	log        *logger.Logger
}

// NewUseCase construye el caso de uso. cache y recorder pueden ser nil.
func NewUseCase(
	priceLists repository.PriceListRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	cache ports.PriceListCache,
	recorder ports.RecalcRecorder,
	currency string,
	log *logger.Logger,
) *UseCase {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		priceLists: priceLists,
		products:   products,
		customers:  customers,
		cache:      cache,
		recorder:   recorder,
		currency:   currency,
		log:        log.Component("pricing"),
	}
}

// Calculate vista previa sin estado: normaliza líneas y ajustes y devuelve los totales.
func (uc *UseCase) Calculate(in dto.CalculateRequest) *dto.CalculateResponse {
	doc := dto.ToDocument(in.Items, in.AdjustmentsRequest)
	uc.recorder.DocumentRecalculated("preview")
	return &dto.CalculateResponse{
		Items:          dto.FromPricingItems(doc.Items),
		TotalsResponse: dto.TotalsFromDocument(doc),
	}
}

// ResolvePrice precio de un producto en una lista. Sin código se usa la lista del
// cliente; un código desconocido cae a REGULAR y luego al precio base.
func (uc *UseCase) ResolvePrice(ctx context.Context, companyID string, in dto.ResolvePriceRequest) (*dto.ResolvedPriceResponse, error) {
	product, err := uc.products.GetByID(ctx, companyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	code := strings.ToUpper(strings.TrimSpace(in.PriceList))
	if code == "" && in.CustomerID != "" {
		customer, err := uc.customers.GetByID(ctx, companyID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		code = customer.PriceListCode
	}
	if code == "" {
		code = entity.PriceListRegular
	}

	pl, err := uc.resolveList(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	return &dto.ResolvedPriceResponse{
		ProductID:       product.ID,
		ProductName:     product.Name,
		Specification:   product.Specification,
		PriceList:       pl.Code,
		PriceListName:   pl.Name,
		BasePrice:       core.FormatMoney(product.BasePrice),
		PriceMultiplier: core.FormatMultiplier(pl.Multiplier),
		Price:           core.FormatMoney(core.ApplyMultiplier(product.BasePrice, pl.Multiplier)),
		Currency:        uc.currency,
	}, nil
}

// resolveList code -> REGULAR -> BASE (multiplicador 1).
func (uc *UseCase) resolveList(ctx context.Context, companyID, code string) (*entity.PriceList, error) {
	for _, c := range []string{code, entity.PriceListRegular} {
		if c == entity.PriceListBase {
			break
		}
		pl, err := uc.lookup(ctx, companyID, c)
		if err != nil {
			return nil, err
		}
		if pl != nil {
			return pl, nil
		}
	}
	return &entity.PriceList{
		CompanyID:  companyID,
		Code:       entity.PriceListBase,
		Name:       "Precio base",
		Multiplier: decimal.NewFromInt(1),
	}, nil
}

func (uc *UseCase) lookup(ctx context.Context, companyID, code string) (*entity.PriceList, error) {
	if uc.cache != nil {
		pl, err := uc.cache.Get(ctx, companyID, code)
		if err != nil {
			uc.log.Warn().Err(err).Str("code", code).Msg("cache de listas de precios no disponible")
		} else if pl != nil {
			return pl, nil
		}
	}
	pl, err := uc.priceLists.GetByCode(ctx, companyID, code)
	if err != nil || pl == nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, pl); err != nil {
			uc.log.Warn().Err(err).Str("code", code).Msg("no se pudo guardar la lista en cache")
		}
	}
	return pl, nil
}

// ListPriceLists listas de la empresa ordenadas por código.
func (uc *UseCase) ListPriceLists(ctx context.Context, companyID string) ([]dto.PriceListResponse, error) {
	list, err := uc.priceLists.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListResponse, 0, len(list))
	for _, pl := range list {
		out = append(out, toPriceListResponse(pl))
	}
	return out, nil
}

// CreatePriceList crea una lista. El multiplicador se normaliza a 4 decimales y debe ser > 0.
func (uc *UseCase) CreatePriceList(ctx context.Context, companyID string, in dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == entity.PriceListBase {
		return nil, fmt.Errorf("%w: %s es un código reservado", domain.ErrInvalidInput, code)
	}
	m := core.NormalizeMultiplier(in.Multiplier)
	if !m.IsPositive() {
		return nil, fmt.Errorf("%w: el multiplicador debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := time.Now()
	pl := &entity.PriceList{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Multiplier:  m,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.priceLists.Create(ctx, pl); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, companyID, code); err != nil {
			uc.log.Warn().Err(err).Str("code", code).Msg("no se pudo invalidar la cache")
		}
	}
	uc.log.Info().Str("company_id", companyID).Str("code", code).Str("multiplier", core.FormatMultiplier(m)).Msg("lista de precios creada")
	resp := toPriceListResponse(pl)
	return &resp, nil
}

func toPriceListResponse(pl *entity.PriceList) dto.PriceListResponse {
	return dto.PriceListResponse{
		ID:          pl.ID,
		Code:        pl.Code,
		Name:        pl.Name,
		Multiplier:  core.FormatMultiplier(pl.Multiplier),
		Description: pl.Description,
	}
}
