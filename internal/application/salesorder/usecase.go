// Package salesorder casos de uso de órdenes de venta: conversión de cotizaciones
// aprobadas, órdenes directas, estados y PDF.
package salesorder

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
	Prefix   string // SO
	MaxItems int
	Currency string
}

// UseCase casos de uso de órdenes de venta.
type UseCase struct {
	orders    repository.SalesOrderRepository
	customers repository.CustomerRepository
	companies repository.CompanyRepository
	tx        ports.SalesTxRunner
	pdf       ports.DocumentPDFRenderer
	recorder  ports.RecalcRecorder
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. pdf y recorder pueden ser nil.
func NewUseCase(
	orders repository.SalesOrderRepository,
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
		cfg.Prefix = "SO"
	}
	return &UseCase{
		orders:    orders,
		customers: customers,
		companies: companies,
		tx:        tx,
		pdf:       pdf,
		recorder:  recorder,
		cfg:       cfg,
		log:       log.Component("salesorder"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CreateFromQuotation convierte una cotización aprobada en orden de venta.
// Copia líneas y ajustes, recalcula y marca la cotización como convertida,
// todo en una sola transacción.
func (uc *UseCase) CreateFromQuotation(ctx context.Context, companyID, userID, quotationID string, in dto.ConvertQuotationRequest) (*dto.SalesOrderResponse, error) {
	dueDate, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate", domain.ErrInvalidInput)
	}
	now := uc.now()
	var order *entity.SalesOrder
	var sourceNumber string

	err = uc.tx.RunSales(ctx, func(
		quotations repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		sequences repository.SequenceRepository,
	) error {
		q, err := quotations.GetByIDForUpdate(ctx, companyID, quotationID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		if q.Status != entity.QuotationApproved {
			return fmt.Errorf("%w: la cotización %s no está aprobada (%s)", domain.ErrConflict, q.Number, q.Status)
		}
		existing, err := orders.GetByQuotation(ctx, companyID, q.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la cotización %s ya tiene la orden %s", domain.ErrConflict, q.Number, existing.Number)
		}

		qid := q.ID
		notes := in.Notes
		if notes == "" {
			notes = q.Notes
		}
		o := &entity.SalesOrder{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			CustomerID:  q.CustomerID,
			QuotationID: &qid,
			CreatedBy:   userID,
			Revision:    q.Revision,
			Status:      entity.SalesOrderPending,
			DueDate:     dueDate,
			Notes:       notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		o.Apply(q.Document())

		if err := uc.assignNumber(ctx, sequences, o); err != nil {
			return err
		}
		if err := orders.Create(ctx, o); err != nil {
			return err
		}
		if err := quotations.UpdateStatus(ctx, companyID, q.ID, entity.QuotationConverted, now); err != nil {
			return err
		}
		order = o
		sourceNumber = q.Number
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.DocumentRecalculated("sales_order")
	uc.log.Info().
		Str("company_id", companyID).
		Str("quotation", sourceNumber).
		Str("number", order.Number).
		Str("total", pricing.FormatMoney(order.Total)).
		Msg("cotización convertida en orden de venta")
	return uc.response(ctx, order, true), nil
}

// Create orden de venta directa, sin cotización.
func (uc *UseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	customer, err := uc.customers.GetByID(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}
	if err := pricing.ValidateItemCount(len(in.Items), uc.cfg.MaxItems); err != nil {
		return nil, err
	}
	dueDate, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate", domain.ErrInvalidInput)
	}

	now := uc.now()
	o := &entity.SalesOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: customer.ID,
		CreatedBy:  userID,
		Revision:   1,
		Status:     entity.SalesOrderPending,
		DueDate:    dueDate,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	o.Apply(dto.ToDocument(in.Items, in.AdjustmentsRequest))
	uc.recorder.DocumentRecalculated("sales_order")

	err = uc.tx.RunSales(ctx, func(
		_ repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		sequences repository.SequenceRepository,
	) error {
		if err := uc.assignNumber(ctx, sequences, o); err != nil {
			return err
		}
		return orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("number", o.Number).Str("total", pricing.FormatMoney(o.Total)).Msg("orden de venta creada")
	return ToResponse(o, customer.Name, true, now), nil
}

// Get orden con líneas, cliente y días para la entrega.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.SalesOrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return uc.response(ctx, o, true), nil
}

// List cabeceras filtradas.
func (uc *UseCase) List(ctx context.Context, companyID string, query dto.DocumentListQuery) (*dto.SalesOrderListResponse, error) {
	if query.Status != "" && !entity.ValidSalesOrderStatus(query.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, query.Status)
	}
	f, err := query.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.orders.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToResponse(o, "", false, now))
	}
	return &dto.SalesOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// UpdateStatus cambia el estado; solo se aceptan estados conocidos. "paid" lo
// asignan los pagos, no este endpoint.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entity.ValidSalesOrderStatus(status) || status == entity.SalesOrderPaid {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	var number, from string
	err := uc.tx.RunSales(ctx, func(
		_ repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		_ repository.SequenceRepository,
	) error {
		o, err := orders.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		number, from = o.Number, o.Status
		return orders.UpdateStatus(ctx, companyID, id, status, uc.now())
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("number", number).Str("from", from).Str("to", status).Msg("estado de orden de venta actualizado")
	return nil
}

// PDF genera el PDF de la orden. Devuelve los bytes y el nombre de archivo.
func (uc *UseCase) PDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("salesorder: generador de PDF no configurado")
	}
	o, err := uc.orders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customers.GetByID(ctx, companyID, o.CustomerID)
	if err != nil {
		return nil, "", err
	}
	if customer == nil {
		customer = &entity.Customer{ID: o.CustomerID}
	}
	b, err := uc.pdf.RenderSalesOrder(ports.PDFHeader{Company: company, Customer: customer, Currency: uc.cfg.Currency}, o)
	if err != nil {
		return nil, "", fmt.Errorf("salesorder: pdf: %w", err)
	}
	return b, o.Number + ".pdf", nil
}

func (uc *UseCase) assignNumber(ctx context.Context, sequences repository.SequenceRepository, o *entity.SalesOrder) error {
	year := o.CreatedAt.Year()
	seq, err := sequences.Next(ctx, o.CompanyID, repository.SequenceSalesOrder, year)
	if err != nil {
		return fmt.Errorf("salesorder: numeración: %w", err)
	}
	o.Number = entity.FormatDocumentNumber(uc.cfg.Prefix, year, seq)
	return nil
}

func (uc *UseCase) response(ctx context.Context, o *entity.SalesOrder, withItems bool) *dto.SalesOrderResponse {
	name := ""
	if c, err := uc.customers.GetByID(ctx, o.CompanyID, o.CustomerID); err == nil && c != nil {
		name = c.Name
	}
	return ToResponse(o, name, withItems, uc.now())
}

// ToResponse orden a DTO. daysUntilDue se calcula contra now y solo si hay fecha de entrega.
func ToResponse(o *entity.SalesOrder, customerName string, withItems bool, now time.Time) *dto.SalesOrderResponse {
	resp := &dto.SalesOrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		Revision:       fmt.Sprintf("R%d", o.Revision),
		Status:         o.Status,
		CustomerID:     o.CustomerID,
		CustomerName:   customerName,
		DueDate:        dto.FormatDate(o.DueDate),
		Notes:          o.Notes,
		TotalsResponse: dto.TotalsFromDocument(o.Document()),
		PaidAmount:     pricing.FormatMoney(o.PaidAmount),
		Balance:        pricing.FormatMoney(o.Balance()),
		PaymentStatus:  o.PaymentStatus(),
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.QuotationID != nil {
		resp.QuotationID = *o.QuotationID
	}
	if o.DueDate != nil {
		days := pricing.DaysUntil(*o.DueDate, now)
		resp.DaysUntilDue = &days
	}
	if withItems {
		resp.Items = dto.FromDocumentItems(o.Items)
	}
	return resp
}
