package dto

import (
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
	"github.com/jhoicas/Cotizador-api/internal/domain/repository"
)

// CreateQuotationRequest body de POST /api/quotations y PUT /api/quotations/:id.
// Los totales que mande el cliente se ignoran: el servidor recalcula.
type CreateQuotationRequest struct {
	CustomerID string            `json:"customerId" validate:"required,uuid"`
	PriceList  string            `json:"priceList" validate:"omitempty,max=30"`
	ValidUntil string            `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Notes      string            `json:"notes" validate:"max=4000"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	AdjustmentsRequest
}

// QuotationResponse cotización con líneas y totales.
type QuotationResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Revision     string             `json:"revision"`
	Status       string             `json:"status"`
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName,omitempty"`
	PriceList    string             `json:"priceList,omitempty"`
	ValidUntil   string             `json:"validUntil,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Items        []LineItemResponse `json:"items,omitempty"`
	TotalsResponse
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuotationListResponse listado paginado (sin líneas).
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ConvertQuotationRequest body de POST /api/quotations/:id/convert.
type ConvertQuotationRequest struct {
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes   string `json:"notes" validate:"max=4000"`
}

// CreateSalesOrderRequest body de POST /api/sales-orders (orden directa).
type CreateSalesOrderRequest struct {
	CustomerID string            `json:"customerId" validate:"required,uuid"`
	DueDate    string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes      string            `json:"notes" validate:"max=4000"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	AdjustmentsRequest
}

// SalesOrderResponse orden de venta con líneas y totales.
type SalesOrderResponse struct {
	ID           string             `json:"id"`
	Number       string             `json:"number"`
	Revision     string             `json:"revision"`
	Status       string             `json:"status"`
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName,omitempty"`
	QuotationID  string             `json:"quotationId,omitempty"`
	DueDate      string             `json:"dueDate,omitempty"`
	DaysUntilDue *int               `json:"daysUntilDue,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Items        []LineItemResponse `json:"items,omitempty"`
	TotalsResponse
	PaidAmount    string    `json:"paidAmount"`
	Balance       string    `json:"balance"`
	PaymentStatus string    `json:"paymentStatus"` // unpaid, partial, paid
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SalesOrderListResponse listado paginado (sin líneas).
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CreateJobOrderRequest body de POST /api/job-orders.
type CreateJobOrderRequest struct {
	SalesOrderID string `json:"salesOrderId" validate:"required,uuid"`
	DueDate      string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Instructions string `json:"instructions" validate:"max=4000"`
}

// RecordShipmentRequest body de POST /api/job-orders/:id/shipments.
// Se identifica la línea por ItemID o, si va vacío, por ProductID.
type RecordShipmentRequest struct {
	ItemID    string      `json:"itemId" validate:"required_without=ProductID"`
	ProductID string      `json:"productId"`
	Quantity  pricing.Raw `json:"quantity"`
}

// JobOrderItemResponse línea de orden de producción.
type JobOrderItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Specification string `json:"specification,omitempty"`
	Quantity      string `json:"quantity"`
	Shipped       string `json:"shipped"`
	Balance       string `json:"balance"`
}

// JobOrderResponse orden de producción con métricas de avance (solo visualización).
type JobOrderResponse struct {
	ID               string                 `json:"id"`
	Number           string                 `json:"number"`
	Status           string                 `json:"status"`
	SalesOrderID     string                 `json:"salesOrderId"`
	CustomerID       string                 `json:"customerId"`
	DueDate          string                 `json:"dueDate"`
	DaysUntilDue     int                    `json:"daysUntilDue"`
	Instructions     string                 `json:"instructions,omitempty"`
	TotalQuantity    string                 `json:"totalQuantity"`
	TotalShipped     string                 `json:"totalShipped"`
	ShipmentProgress string                 `json:"shipmentProgress"`
	Items            []JobOrderItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// JobOrderListResponse listado paginado.
type JobOrderListResponse struct {
	Items []JobOrderResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// DocumentListQuery filtros de listado por query string.
type DocumentListQuery struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,max=30"`
	CustomerID string `query:"customerId" validate:"omitempty,uuid"`
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// Filter convierte la query a filtro de repositorio. To es inclusivo (se toma
// hasta el final de ese día).
func (q DocumentListQuery) Filter() (repository.DocumentFilter, error) {
	q.DefaultPage()
	from, err := ParseDate(q.From)
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	to, err := ParseDate(q.To)
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	return repository.DocumentFilter{
		Status:     q.Status,
		CustomerID: q.CustomerID,
		From:       from,
		To:         to,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}, nil
}
