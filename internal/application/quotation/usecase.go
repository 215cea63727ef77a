// Package quotation contiene los casos de uso de cotizaciones: creación,
// revisiones (R1, R2, ...), duplicado, cambios de estado y exportación a PDF.
package quotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// Config parámetros de numeración y límites.
type Config struct {
	Prefix   string // QT
	MaxItems int
	Currency string
}

// UseCase casos de uso de cotizaciones.
type UseCase struct {
	quotations repository.QuotationRepository
	customers  repository.CustomerRepository
	companies  repository.CompanyRepository
	tx         ports.SalesTxRunner
	pdf        ports.DocumentPDFRenderer
	recorder   ports.RecalcRecorder
	cfg        Config
	log        *logger.Logger

	// now reloj inyectable (tests de la regla de bloqueo).
	now func() time.Time
}

// NewUseCase construye el caso de uso. pdf y recorder pueden ser nil.
func NewUseCase(
	quotations repository.QuotationRepository,
	customers repository.CustomerRepository,
	companies repository.CompanyRepository,
	tx ports.SalesTxRunner,
	pdf ports.DocumentPDFRenderer,
	recorder ports.RecalcRecorder,
	cfg Config,
	log *logger.Logger,
) *UseCase {
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "QT"
	}
	return &UseCase{
		quotations: quotations,
		customers:  customers,
		companies:  companies,
		tx:         tx,
		pdf:        pdf,
		recorder:   recorder,
		cfg:        cfg,
		log:        log.Component("quotation"),
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create crea la cotización en borrador, revisión R1. Los totales se recalculan
// en el servidor; lo que mande el cliente se ignora.
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	customer, err := uc.customer(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := pricing.ValidateItemCount(len(in.Items), uc.cfg.MaxItems); err != nil {
		return nil, err
	}
	validUntil, err := dto.ParseDate(in.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: validUntil", domain.ErrInvalidInput)
	}

	now := uc.now()
	q := &entity.Quotation{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    customer.ID,
		CreatedBy:     userID,
		Revision:      1,
		Status:        entity.QuotationDraft,
		PriceListCode: priceListCode(in.PriceList, customer),
		ValidUntil:    validUntil,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	q.Apply(dto.ToDocument(in.Items, in.AdjustmentsRequest))
	uc.recorder.DocumentRecalculated("quotation")

	if err := uc.insert(ctx, q); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("number", q.Number).
		Str("total", pricing.FormatMoney(q.Total)).
		Int("items", len(q.Items)).
		Msg("cotización creada")
	return ToResponse(q, customer.Name, true), nil
}

// Get cotización con líneas y nombre del cliente.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	name := ""
	if c, err := uc.customers.GetByID(ctx, companyID, q.CustomerID); err == nil && c != nil {
		name = c.Name
	}
	return ToResponse(q, name, true), nil
}

// List cabeceras filtradas por estado, cliente y rango de fechas.
func (uc *UseCase) List(ctx context.Context, companyID string, query dto.DocumentListQuery) (*dto.QuotationListResponse, error) {
	if query.Status != "" && !entity.ValidQuotationStatus(query.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, query.Status)
	}
	f, err := query.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.quotations.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *ToResponse(q, "", false))
	}
	return &dto.QuotationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// Revise reemplaza líneas y ajustes y sube la revisión (R1 -> R2).
// Aprobadas, convertidas o creadas antes de hoy devuelven ErrLocked. La regla se
// evalúa con la cabecera bloqueada, así una conversión concurrente no se pisa.
func (uc *UseCase) Revise(ctx context.Context, companyID, id string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	customer, err := uc.customer(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := pricing.ValidateItemCount(len(in.Items), uc.cfg.MaxItems); err != nil {
		return nil, err
	}
	validUntil, err := dto.ParseDate(in.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("%w: validUntil", domain.ErrInvalidInput)
	}
	doc := dto.ToDocument(in.Items, in.AdjustmentsRequest)
	now := uc.now()
	var q *entity.Quotation

	err = uc.tx.RunSales(ctx, func(
		quotations repository.QuotationRepository,
		_ repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		_ repository.SequenceRepository,
	) error {
		current, err := quotations.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := current.CheckRevisable(now); err != nil {
			return err
		}
		current.CustomerID = customer.ID
		current.PriceListCode = priceListCode(in.PriceList, customer)
		current.ValidUntil = validUntil
		current.Notes = in.Notes
		current.Revision++
		current.UpdatedAt = now
		current.Apply(doc)
		if err := quotations.Update(ctx, current); err != nil {
			return err
		}
		q = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.DocumentRecalculated("quotation")
	uc.log.Info().
		Str("company_id", companyID).
		Str("number", q.Number).
		Str("revision", q.RevisionLabel()).
		Str("total", pricing.FormatMoney(q.Total)).
		Msg("cotización revisada")
	return ToResponse(q, customer.Name, true), nil
}

// Duplicate crea una cotización pending nueva (número nuevo, R1) con el mismo
// contenido. Es la salida para cotizaciones bloqueadas.
func (uc *UseCase) Duplicate(ctx context.Context, companyID, userID, id string) (*dto.QuotationResponse, error) {
	src, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	q := &entity.Quotation{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    src.CustomerID,
		CreatedBy:     userID,
		Revision:      1,
		Status:        entity.QuotationPending,
		PriceListCode: src.PriceListCode,
		ValidUntil:    src.ValidUntil,
		Notes:         src.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	q.Apply(src.Document())
	uc.recorder.DocumentRecalculated("quotation")

	if err := uc.insert(ctx, q); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("source", src.Number).Str("number", q.Number).Msg("cotización duplicada")
	return ToResponse(q, "", true), nil
}

// UpdateStatus cambia el estado. "converted" solo lo asigna la conversión a
// orden de venta; una cotización convertida ya no cambia de estado.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entity.ValidQuotationStatus(status) || status == entity.QuotationConverted {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	var number, from string
	err := uc.tx.RunSales(ctx, func(
		quotations repository.QuotationRepository,
		_ repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		_ repository.SequenceRepository,
	) error {
		q, err := quotations.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.Status == entity.QuotationConverted {
			return fmt.Errorf("%w: la cotización %s ya se convirtió", domain.ErrConflict, q.Number)
		}
		number, from = q.Number, q.Status
		return quotations.UpdateStatus(ctx, companyID, id, status, uc.now())
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("number", number).Str("from", from).Str("to", status).Msg("estado de cotización actualizado")
	return nil
}

// PDF genera el PDF de la cotización. Devuelve los bytes y el nombre de archivo.
func (uc *UseCase) PDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("quotation: generador de PDF no configurado")
	}
	q, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customers.GetByID(ctx, companyID, q.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		customer = &entity.Customer{ID: q.CustomerID}
	}
	b, err := uc.pdf.RenderQuotation(ports.PDFHeader{Company: company, Customer: customer, Currency: uc.cfg.Currency}, q)
	if err != nil {
		return nil, "", fmt.Errorf("quotation: pdf: %w", err)
	}
	return b, fmt.Sprintf("%s-%s.pdf", q.Number, q.RevisionLabel()), nil
}

// insert asigna número y persiste dentro de una transacción.
func (uc *UseCase) insert(ctx context.Context, q *entity.Quotation) error {
	year := q.CreatedAt.Year()
	return uc.tx.RunSales(ctx, func(
		quotations repository.QuotationRepository,
		_ repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		sequences repository.SequenceRepository,
	) error {
		seq, err := sequences.Next(ctx, q.CompanyID, repository.SequenceQuotation, year)
		if err != nil {
			return fmt.Errorf("quotation: numeración: %w", err)
		}
		q.Number = entity.FormatDocumentNumber(uc.cfg.Prefix, year, seq)
		return quotations.Create(ctx, q)
	})
}

func (uc *UseCase) load(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	q, err := uc.quotations.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

func (uc *UseCase) customer(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	c, err := uc.customers.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	return c, nil
}

func priceListCode(code string, c *entity.Customer) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = c.PriceListCode
	}
	return code
}

// ToResponse cotización a DTO. withItems=false para listados.
func ToResponse(q *entity.Quotation, customerName string, withItems bool) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:             q.ID,
		Number:         q.Number,
		Revision:       q.RevisionLabel(),
		Status:         q.Status,
		CustomerID:     q.CustomerID,
		CustomerName:   customerName,
		PriceList:      q.PriceListCode,
		ValidUntil:     dto.FormatDate(q.ValidUntil),
		Notes:          q.Notes,
		TotalsResponse: dto.TotalsFromDocument(q.Document()),
		CreatedBy:      q.CreatedBy,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
	if withItems {
		resp.Items = dto.FromDocumentItems(q.Items)
	}
	return resp
}
