package ports

import (
	"context"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// SalesTxRunner ejecuta fn dentro de una transacción con los repos de documentos
// de venta atados a ella. Si fn retorna error se hace rollback.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		quotations repository.QuotationRepository,
		salesOrders repository.SalesOrderRepository,
		jobOrders repository.JobOrderRepository,
		sequences repository.SequenceRepository,
	) error) error
}

// PDFHeader datos de empresa y cliente que acompañan al documento en el PDF.
type PDFHeader struct {
	Company  *entity.Company
	Customer *entity.Customer
	Currency string
}

// DocumentPDFRenderer genera el PDF de cotizaciones y órdenes de venta.
type DocumentPDFRenderer interface {
	RenderQuotation(h PDFHeader, q *entity.Quotation) ([]byte, error)
	RenderSalesOrder(h PDFHeader, o *entity.SalesOrder) ([]byte, error)
}

// PriceListCache caché de listas de precios por empresa y código.
// Get devuelve nil, nil en un miss.
type PriceListCache interface {
	Get(ctx context.Context, companyID, code string) (*entity.PriceList, error)
	Set(ctx context.Context, pl *entity.PriceList) error
	Invalidate(ctx context.Context, companyID, code string) error
}

// RecalcRecorder cuenta recálculos de documentos por tipo (quotation, sales_order, preview).
type RecalcRecorder interface {
	DocumentRecalculated(kind string)
}

// NopRecorder RecalcRecorder que no hace nada.
type NopRecorder struct{}

func (NopRecorder) DocumentRecalculated(string) {}
