package dto

import (
	"time"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// RecordPaymentRequest body de POST /api/sales-orders/:id/payments.
// Amount se normaliza a 2 decimales y debe ser > 0 sin superar el saldo.
type RecordPaymentRequest struct {
	Amount    pricing.Raw `json:"amount"`
	Method    string      `json:"method" validate:"omitempty,max=50"`
	Reference string      `json:"reference" validate:"omitempty,max=100"`
	Notes     string      `json:"notes" validate:"omitempty,max=500"`
	PaidAt    string      `json:"paidAt"` // YYYY-MM-DD; vacío = ahora
}

// RefundPaymentRequest body de POST /api/sales-orders/:id/payments/:paymentId/refund.
type RefundPaymentRequest struct {
	Amount pricing.Raw `json:"amount"`
	Notes  string      `json:"notes" validate:"omitempty,max=500"`
}

// PaymentResponse pago o reembolso.
type PaymentResponse struct {
	ID           string    `json:"id"`
	SalesOrderID string    `json:"salesOrderId"`
	Kind         string    `json:"kind"`
	RefundOf     string    `json:"refundOf,omitempty"`
	Amount       string    `json:"amount"`
	Refunded     string    `json:"refunded,omitempty"`
	Method       string    `json:"method"`
	Reference    string    `json:"reference,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	PaidAt       time.Time `json:"paidAt"`
	RecordedBy   string    `json:"recordedBy"`
}

// PaymentStateResponse estado de cobro de la orden.
type PaymentStateResponse struct {
	SalesOrderID  string `json:"salesOrderId"`
	Number        string `json:"number"`
	Status        string `json:"status"`
	Total         string `json:"total"`
	PaidAmount    string `json:"paidAmount"`
	Balance       string `json:"balance"`
	PaymentStatus string `json:"paymentStatus"`
}

// PaymentResultResponse respuesta al registrar un pago o reembolso.
type PaymentResultResponse struct {
	Payment PaymentResponse      `json:"payment"`
	Order   PaymentStateResponse `json:"order"`
}

// PaymentListResponse movimientos de una orden, el más reciente primero.
type PaymentListResponse struct {
	Order PaymentStateResponse `json:"order"`
	Items []PaymentResponse    `json:"items"`
}
