package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary (mes en curso).
// Los porcentajes son de visualización; no se persisten.
type DashboardSummaryDTO struct {
	Period          string `json:"period"` // ej: "2026-10"
	QuotationCount  int64  `json:"quotationCount"`
	SalesOrderCount int64  `json:"salesOrderCount"`
	ConversionRate  string `json:"conversionRate"` // % cotizaciones -> órdenes
	MonthSales      string `json:"monthSales"`     // suma de totales de órdenes de venta
	MonthCollected  string `json:"monthCollected"` // pagos recibidos
	MonthRefunded   string `json:"monthRefunded"`
	MonthNetCash    string `json:"monthNetCash"`   // recibido - reembolsado
	Currency        string `json:"currency"`

	// Órdenes de producción abiertas más urgentes (entrega más próxima primero)
	UrgentJobOrders []JobOrderSummaryDTO `json:"urgentJobOrders"`
}

// JobOrderSummaryDTO resumen de una orden de producción para el widget.
type JobOrderSummaryDTO struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	Status           string `json:"status"`
	DueDate          string `json:"dueDate"`
	DaysUntilDue     int    `json:"daysUntilDue"`
	ShipmentProgress string `json:"shipmentProgress"`
}
