package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// Tipos de secuencia para numeración de documentos.
const (
	SequenceQuotation  = "quotation"
	SequenceSalesOrder = "sales_order"
	SequenceJobOrder   = "job_order"
)

// SequenceRepository entrega el siguiente consecutivo por empresa, tipo y año.
// Debe ser atómico (dos llamadas concurrentes nunca reciben el mismo valor).
type SequenceRepository interface {
	Next(ctx context.Context, companyID, kind string, year int) (int, error)
}

// DocumentFilter filtros comunes de listados de documentos.
type DocumentFilter struct {
	Status     string
	CustomerID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// QuotationRepository persiste cabecera y líneas de cotizaciones.
// GetByID carga las líneas; List solo cabeceras. Los GetByIDForUpdate bloquean
// la cabecera hasta el fin de la transacción: usarlos solo dentro de RunSales.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	// Update reescribe cabecera y reemplaza todas las líneas.
	Update(ctx context.Context, q *entity.Quotation) error
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Quotation, error)
	GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.Quotation, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.Quotation, int, error)
}

// SalesOrderRepository persiste órdenes de venta y sus pagos.
type SalesOrderRepository interface {
	Create(ctx context.Context, o *entity.SalesOrder) error
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
	GetByID(ctx context.Context, companyID, id string) (*entity.SalesOrder, error)
	GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.SalesOrder, error)
	GetByQuotation(ctx context.Context, companyID, quotationID string) (*entity.SalesOrder, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.SalesOrder, int, error)

	// AddPayment inserta un pago o reembolso; no toca paid_amount.
	AddPayment(ctx context.Context, p *entity.Payment) error
	// UpdatePaidAmount fija lo cobrado y el estado de la orden.
	UpdatePaidAmount(ctx context.Context, companyID, id string, paid decimal.Decimal, status string, at time.Time) error
	// ListPayments pagos y reembolsos de la orden, el más reciente primero.
	// Cada pago trae en Refunded lo ya reembolsado.
	ListPayments(ctx context.Context, companyID, salesOrderID string) ([]*entity.Payment, error)
}

// JobOrderRepository persiste órdenes de producción y sus despachos.
type JobOrderRepository interface {
	Create(ctx context.Context, j *entity.JobOrder) error
	GetByID(ctx context.Context, companyID, id string) (*entity.JobOrder, error)
	GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.JobOrder, error)
	List(ctx context.Context, companyID string, f DocumentFilter) ([]*entity.JobOrder, int, error)
	// AddShipment registra el despacho y suma la cantidad al shipped de la línea.
	AddShipment(ctx context.Context, s *entity.Shipment) error
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
}
