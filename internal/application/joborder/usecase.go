// Package joborder casos de uso de órdenes de producción y registro de despachos.
package joborder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

// UseCase casos de uso de órdenes de producción.
type UseCase struct {
	jobOrders repository.JobOrderRepository
	tx        ports.SalesTxRunner
	prefix    string
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. prefix vacío = "JO".
func NewUseCase(jobOrders repository.JobOrderRepository, tx ports.SalesTxRunner, prefix string, log *logger.Logger) *UseCase {
	if prefix == "" {
		prefix = "JO"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		jobOrders: jobOrders,
		tx:        tx,
		prefix:    prefix,
		log:       log.Component("joborder"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CreateFromSalesOrder genera la orden de producción: una línea por cada línea de
// la orden de venta con cantidad > 0. La orden de venta pasa a in_production.
func (uc *UseCase) CreateFromSalesOrder(ctx context.Context, companyID, userID string, in dto.CreateJobOrderRequest) (*dto.JobOrderResponse, error) {
	due, err := dto.ParseDate(in.DueDate)
	if err != nil || due == nil {
		return nil, fmt.Errorf("%w: dueDate", domain.ErrInvalidInput)
	}
	now := uc.now()
	var jo *entity.JobOrder
	var soNumber string

	err = uc.tx.RunSales(ctx, func(
		_ repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		jobOrders repository.JobOrderRepository,
		sequences repository.SequenceRepository,
	) error {
		so, err := orders.GetByIDForUpdate(ctx, companyID, in.SalesOrderID)
		if err != nil {
			return err
		}
		if so == nil {
			return domain.ErrNotFound
		}
		switch so.Status {
		case entity.SalesOrderInProduction, entity.SalesOrderCompleted, entity.SalesOrderCancelled:
			return fmt.Errorf("%w: la orden %s está en estado %s", domain.ErrConflict, so.Number, so.Status)
		}

		j := &entity.JobOrder{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			SalesOrderID: so.ID,
			CustomerID:   so.CustomerID,
			CreatedBy:    userID,
			Status:       entity.JobOrderPending,
			DueDate:      *due,
			Instructions: in.Instructions,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, it := range so.Items {
			if !it.Quantity.IsPositive() {
				continue
			}
			j.Items = append(j.Items, entity.JobOrderItem{
				ProductID:     it.ProductID,
				ProductName:   it.ProductName,
				Specification: it.Specification,
				Quantity:      it.Quantity,
				Shipped:       decimal.Zero,
			})
		}
		if len(j.Items) == 0 {
			return fmt.Errorf("%w: la orden %s no tiene cantidades a producir", domain.ErrInvalidInput, so.Number)
		}

		year := now.Year()
		seq, err := sequences.Next(ctx, companyID, repository.SequenceJobOrder, year)
		if err != nil {
			return fmt.Errorf("joborder: numeración: %w", err)
		}
		j.Number = entity.FormatDocumentNumber(uc.prefix, year, seq)
		if err := jobOrders.Create(ctx, j); err != nil {
			return err
		}
		if err := orders.UpdateStatus(ctx, companyID, so.ID, entity.SalesOrderInProduction, now); err != nil {
			return err
		}
		jo = j
		soNumber = so.Number
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("sales_order", soNumber).Str("number", jo.Number).Msg("orden de producción creada")
	return ToResponse(jo, true, now), nil
}

// RecordShipment suma un despacho a una línea (por itemId o productId). La
// cantidad se normaliza a 1 decimal, debe ser > 0 y no superar el saldo. Con todo
// despachado la orden de producción y su orden de venta quedan completed.
func (uc *UseCase) RecordShipment(ctx context.Context, companyID, userID, id string, in dto.RecordShipmentRequest) (*dto.JobOrderResponse, error) {
	qty := pricing.NormalizeQuantity(in.Quantity)
	if !qty.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad despachada debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := uc.now()
	var jo *entity.JobOrder

	err := uc.tx.RunSales(ctx, func(
		_ repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		jobOrders repository.JobOrderRepository,
		_ repository.SequenceRepository,
	) error {
		// Con la cabecera bloqueada las líneas leídas ya incluyen despachos concurrentes.
		j, err := jobOrders.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if j == nil {
			return domain.ErrNotFound
		}
		if j.Status == entity.JobOrderCompleted {
			return fmt.Errorf("%w: la orden %s ya está completa", domain.ErrConflict, j.Number)
		}
		idx := findItem(j.Items, in.ItemID, in.ProductID)
		if idx < 0 {
			return fmt.Errorf("%w: línea no encontrada en %s", domain.ErrNotFound, j.Number)
		}
		item := &j.Items[idx]
		if qty.GreaterThan(item.Balance()) {
			return fmt.Errorf("%w: despacho %s supera el saldo %s", domain.ErrInvalidInput,
				pricing.FormatQuantity(qty), pricing.FormatQuantity(item.Balance()))
		}

		if err := jobOrders.AddShipment(ctx, &entity.Shipment{
			JobOrderID: j.ID,
			ItemID:     item.ID,
			Quantity:   qty,
			ShippedAt:  now,
			RecordedBy: userID,
		}); err != nil {
			return err
		}
		item.Shipped = item.Shipped.Add(qty)

		next := entity.JobOrderInProduction
		if j.FullyShipped() {
			next = entity.JobOrderCompleted
		}
		if next != j.Status {
			if err := jobOrders.UpdateStatus(ctx, companyID, j.ID, next, now); err != nil {
				return err
			}
			j.Status = next
		}
		if next == entity.JobOrderCompleted {
			if err := orders.UpdateStatus(ctx, companyID, j.SalesOrderID, entity.SalesOrderCompleted, now); err != nil {
				return err
			}
		}
		jo = j
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("number", jo.Number).
		Str("quantity", pricing.FormatQuantity(qty)).
		Str("progress", pricing.FormatMoney(jo.Progress())).
		Msg("despacho registrado")
	return ToResponse(jo, true, now), nil
}

// Get orden de producción con líneas y métricas de avance.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.JobOrderResponse, error) {
	j, err := uc.jobOrders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, domain.ErrNotFound
	}
	return ToResponse(j, true, uc.now()), nil
}

// List órdenes de producción filtradas.
func (uc *UseCase) List(ctx context.Context, companyID string, query dto.DocumentListQuery) (*dto.JobOrderListResponse, error) {
	switch query.Status {
	case "", entity.JobOrderPending, entity.JobOrderInProduction, entity.JobOrderCompleted:
	default:
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, query.Status)
	}
	f, err := query.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	list, total, err := uc.jobOrders.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	items := make([]dto.JobOrderResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *ToResponse(j, false, now))
	}
	return &dto.JobOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

func findItem(items []entity.JobOrderItem, itemID, productID string) int {
	for i, it := range items {
		if itemID != "" && it.ID == itemID {
			return i
		}
	}
	if itemID != "" || productID == "" {
		return -1
	}
	// por producto: primera línea con saldo
	first := -1
	for i, it := range items {
		if it.ProductID != productID {
			continue
		}
		if it.Balance().IsPositive() {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// ToResponse orden de producción a DTO con progreso y días para la entrega.
func ToResponse(j *entity.JobOrder, withItems bool, now time.Time) *dto.JobOrderResponse {
	qty, shipped := j.Totals()
	resp := &dto.JobOrderResponse{
		ID:               j.ID,
		Number:           j.Number,
		Status:           j.Status,
		SalesOrderID:     j.SalesOrderID,
		CustomerID:       j.CustomerID,
		DueDate:          j.DueDate.Format(dto.DateLayout),
		DaysUntilDue:     pricing.DaysUntil(j.DueDate, now),
		Instructions:     j.Instructions,
		TotalQuantity:    pricing.FormatQuantity(qty),
		TotalShipped:     pricing.FormatQuantity(shipped),
		ShipmentProgress: pricing.FormatMoney(j.Progress()),
		CreatedAt:        j.CreatedAt,
	}
	if withItems {
		resp.Items = make([]dto.JobOrderItemResponse, len(j.Items))
		for i, it := range j.Items {
			resp.Items[i] = dto.JobOrderItemResponse{
				ID:            it.ID,
				ProductID:     it.ProductID,
				ProductName:   it.ProductName,
				Specification: it.Specification,
				Quantity:      pricing.FormatQuantity(it.Quantity),
				Shipped:       pricing.FormatQuantity(it.Shipped),
				Balance:       pricing.FormatQuantity(it.Balance()),
			}
		}
	}
	return resp
}
