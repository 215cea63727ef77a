// Package payment registra pagos y reembolsos sobre órdenes de venta y mantiene
// lo cobrado y el saldo de cada orden.
package payment

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
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

const defaultMethod = "cash"

// UseCase cobros de órdenes de venta.
type UseCase struct {
	orders repository.SalesOrderRepository
	tx     ports.SalesTxRunner
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(orders repository.SalesOrderRepository, tx ports.SalesTxRunner, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{orders: orders, tx: tx, log: log.Component("payment"), now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Record registra un pago. El monto se normaliza a 2 decimales, debe ser > 0 y
// la suma de lo cobrado nunca supera el total de la orden. Saldada, una orden
// pending o confirmed pasa a paid.
func (uc *UseCase) Record(ctx context.Context, companyID, userID, orderID string, in dto.RecordPaymentRequest) (*dto.PaymentResultResponse, error) {
	amount := pricing.NormalizeMoney(in.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := uc.now()
	paidAt, err := dto.ParseDate(in.PaidAt)
	if err != nil {
		return nil, fmt.Errorf("%w: paidAt", domain.ErrInvalidInput)
	}
	if paidAt == nil {
		paidAt = &now
	}
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if method == "" {
		method = defaultMethod
	}

	var (
		order *entity.SalesOrder
		p     *entity.Payment
	)
	err = uc.tx.RunSales(ctx, func(
		_ repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		_ repository.SequenceRepository,
	) error {
		o, err := lockOrder(ctx, orders, companyID, orderID)
		if err != nil {
			return err
		}
		if o.Status == entity.SalesOrderCancelled {
			return fmt.Errorf("%w: la orden %s está cancelada", domain.ErrConflict, o.Number)
		}
		balance := o.Balance()
		if !balance.IsPositive() {
			return fmt.Errorf("%w: la orden %s ya está pagada", domain.ErrConflict, o.Number)
		}
		if amount.GreaterThan(balance) {
			return fmt.Errorf("%w: el pago %s supera el saldo %s", domain.ErrInvalidInput,
				pricing.FormatMoney(amount), pricing.FormatMoney(balance))
		}

		p = &entity.Payment{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			SalesOrderID: o.ID,
			Kind:         entity.PaymentKindPayment,
			Amount:       amount,
			Method:       method,
			Reference:    strings.TrimSpace(in.Reference),
			Notes:        in.Notes,
			PaidAt:       *paidAt,
			RecordedBy:   userID,
			CreatedAt:    now,
		}
		if err := orders.AddPayment(ctx, p); err != nil {
			return err
		}
		if err := settle(ctx, orders, o, o.PaidAmount.Add(amount), now); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("number", order.Number).
		Str("amount", pricing.FormatMoney(amount)).
		Str("balance", pricing.FormatMoney(order.Balance())).
		Msg("pago registrado")
	return &dto.PaymentResultResponse{Payment: toPaymentResponse(p), Order: toState(order)}, nil
}

// Refund reembolsa parte o todo de un pago. No se puede reembolsar más de lo
// que queda del pago original. Una orden paid que vuelve a tener saldo pasa a confirmed.
func (uc *UseCase) Refund(ctx context.Context, companyID, userID, orderID, paymentID string, in dto.RefundPaymentRequest) (*dto.PaymentResultResponse, error) {
	amount := pricing.NormalizeMoney(in.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del reembolso debe ser mayor que 0", domain.ErrInvalidInput)
	}
	now := uc.now()

	var (
		order  *entity.SalesOrder
		refund *entity.Payment
	)
	err := uc.tx.RunSales(ctx, func(
		_ repository.QuotationRepository,
		orders repository.SalesOrderRepository,
		_ repository.JobOrderRepository,
		_ repository.SequenceRepository,
	) error {
		o, err := lockOrder(ctx, orders, companyID, orderID)
		if err != nil {
			return err
		}
		payments, err := orders.ListPayments(ctx, companyID, o.ID)
		if err != nil {
			return err
		}
		var original *entity.Payment
		for _, p := range payments {
			if p.ID == paymentID && p.Kind == entity.PaymentKindPayment {
				original = p
				break
			}
		}
		if original == nil {
			return fmt.Errorf("%w: pago %s", domain.ErrNotFound, paymentID)
		}
		refundable := original.Refundable()
		if amount.GreaterThan(refundable) {
			return fmt.Errorf("%w: el reembolso %s supera lo reembolsable %s", domain.ErrInvalidInput,
				pricing.FormatMoney(amount), pricing.FormatMoney(refundable))
		}

		originalID := original.ID
		refund = &entity.Payment{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			SalesOrderID: o.ID,
			Kind:         entity.PaymentKindRefund,
			RefundOf:     &originalID,
			Amount:       amount,
			Method:       original.Method,
			Reference:    original.Reference,
			Notes:        in.Notes,
			PaidAt:       now,
			RecordedBy:   userID,
			CreatedAt:    now,
		}
		if err := orders.AddPayment(ctx, refund); err != nil {
			return err
		}
		paid := o.PaidAmount.Sub(amount)
		if paid.IsNegative() {
			paid = decimal.Zero
		}
		if err := settle(ctx, orders, o, paid, now); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("number", order.Number).
		Str("amount", pricing.FormatMoney(amount)).
		Str("payment_id", paymentID).
		Msg("reembolso registrado")
	return &dto.PaymentResultResponse{Payment: toPaymentResponse(refund), Order: toState(order)}, nil
}

// List movimientos de la orden con su estado de cobro.
func (uc *UseCase) List(ctx context.Context, companyID, orderID string) (*dto.PaymentListResponse, error) {
	o, err := uc.orders.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.orders.ListPayments(ctx, companyID, o.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}
	return &dto.PaymentListResponse{Order: toState(o), Items: items}, nil
}

func lockOrder(ctx context.Context, orders repository.SalesOrderRepository, companyID, id string) (*entity.SalesOrder, error) {
	o, err := orders.GetByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// settle guarda lo cobrado y ajusta el estado de la orden.
func settle(ctx context.Context, orders repository.SalesOrderRepository, o *entity.SalesOrder, paid decimal.Decimal, now time.Time) error {
	o.PaidAmount = paid
	o.Status = nextStatus(o)
	o.UpdatedAt = now
	return orders.UpdatePaidAmount(ctx, o.CompanyID, o.ID, o.PaidAmount, o.Status, now)
}

func nextStatus(o *entity.SalesOrder) string {
	settled := o.PaymentStatus() == entity.PaymentPaid
	switch {
	case settled && (o.Status == entity.SalesOrderPending || o.Status == entity.SalesOrderConfirmed):
		return entity.SalesOrderPaid
	case !settled && o.Status == entity.SalesOrderPaid:
		return entity.SalesOrderConfirmed
	}
	return o.Status
}

func toState(o *entity.SalesOrder) dto.PaymentStateResponse {
	return dto.PaymentStateResponse{
		SalesOrderID:  o.ID,
		Number:        o.Number,
		Status:        o.Status,
		Total:         pricing.FormatMoney(o.Total),
		PaidAmount:    pricing.FormatMoney(o.PaidAmount),
		Balance:       pricing.FormatMoney(o.Balance()),
		PaymentStatus: o.PaymentStatus(),
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	resp := dto.PaymentResponse{
		ID:           p.ID,
		SalesOrderID: p.SalesOrderID,
		Kind:         p.Kind,
		Amount:       pricing.FormatMoney(p.Amount),
		Method:       p.Method,
		Reference:    p.Reference,
		Notes:        p.Notes,
		PaidAt:       p.PaidAt,
		RecordedBy:   p.RecordedBy,
	}
	if p.RefundOf != nil {
		resp.RefundOf = *p.RefundOf
	}
	if p.Kind == entity.PaymentKindPayment && p.Refunded.IsPositive() {
		resp.Refunded = pricing.FormatMoney(p.Refunded)
	}
	return resp
}
