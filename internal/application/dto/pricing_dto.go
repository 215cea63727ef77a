package dto

import (
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// LineItemRequest línea tal como llega del formulario. Quantity y UnitPrice
// aceptan número o string; un valor no numérico vale 0.
type LineItemRequest struct {
	ProductID     string      `json:"productId"`
	ProductName   string      `json:"productName" validate:"max=300"`
	Specification string      `json:"specification" validate:"max=2000"`
	Quantity      pricing.Raw `json:"quantity"`
	UnitPrice     pricing.Raw `json:"unitPrice"`
}

// AdjustmentsRequest cargos y descuento del documento. Discount es magnitud
// (un valor negativo se toma en valor absoluto).
type AdjustmentsRequest struct {
	ShippingFee pricing.Raw `json:"shippingFee"`
	BankCharge  pricing.Raw `json:"bankCharge"`
	Discount    pricing.Raw `json:"discount"`
	Others      pricing.Raw `json:"others"`
}

// LineItemResponse línea con montos como strings de precisión fija.
type LineItemResponse struct {
	ID            string `json:"id,omitempty"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Specification string `json:"specification,omitempty"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unitPrice"`
	LineTotal     string `json:"lineTotal"`
}

// TotalsResponse subtotal, ajustes y total de un documento.
type TotalsResponse struct {
	Subtotal    string `json:"subtotal"`
	ShippingFee string `json:"shippingFee"`
	BankCharge  string `json:"bankCharge"`
	Discount    string `json:"discount"`
	Others      string `json:"others"`
	Total       string `json:"total"`
}

// CalculateRequest body de POST /api/pricing/calculate (vista previa, no persiste).
type CalculateRequest struct {
	Items []LineItemRequest `json:"items" validate:"dive"`
	AdjustmentsRequest
}

// CalculateResponse documento recalculado.
type CalculateResponse struct {
	Items []LineItemResponse `json:"items"`
	TotalsResponse
}

// ResolvePriceRequest body de POST /api/pricing/resolve.
type ResolvePriceRequest struct {
	ProductID string `json:"productId" validate:"required"`
	PriceList string `json:"priceList" validate:"omitempty,max=30"`
	// CustomerID opcional: si PriceList va vacío se usa la lista del cliente.
	CustomerID string `json:"customerId" validate:"omitempty"`
}

// ResolvedPriceResponse precio de un producto en una lista.
type ResolvedPriceResponse struct {
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	Specification   string `json:"specification,omitempty"`
	PriceList       string `json:"priceList"`
	PriceListName   string `json:"priceListName"`
	BasePrice       string `json:"basePrice"`
	PriceMultiplier string `json:"priceMultiplier"`
	Price           string `json:"price"`
	Currency        string `json:"currency"`
}

// CreatePriceListRequest body de POST /api/price-lists.
type CreatePriceListRequest struct {
	Code        string      `json:"code" validate:"required,min=1,max=30,alphanum"`
	Name        string      `json:"name" validate:"required,min=1,max=100"`
	Multiplier  pricing.Raw `json:"multiplier"`
	Description string      `json:"description"`
}

// PriceListResponse lista de precios.
type PriceListResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Multiplier  string `json:"multiplier"`
	Description string `json:"description,omitempty"`
}

// ToLineItems convierte las líneas del request al modelo de cálculo.
func ToLineItems(items []LineItemRequest) []pricing.LineItem {
	out := make([]pricing.LineItem, len(items))
	for i, it := range items {
		out[i] = pricing.LineItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Specification: it.Specification,
			Quantity:      pricing.NormalizeQuantity(it.Quantity),
			UnitPrice:     pricing.NormalizeMoney(it.UnitPrice),
		}
	}
	return out
}

// ToAdjustments convierte los ajustes del request al modelo de cálculo.
func (a AdjustmentsRequest) ToAdjustments() pricing.Adjustments {
	return pricing.Adjustments{
		ShippingFee:  pricing.NormalizeMoney(a.ShippingFee),
		BankCharge:   pricing.NormalizeMoney(a.BankCharge),
		Discount:     pricing.NormalizeDiscount(a.Discount),
		OtherCharges: pricing.NormalizeMoney(a.Others),
	}
}

// ToDocument arma el documento de cálculo a partir de líneas y ajustes del request.
func ToDocument(items []LineItemRequest, adj AdjustmentsRequest) pricing.Document {
	return pricing.Recalculate(pricing.Document{Items: ToLineItems(items), Adjustments: adj.ToAdjustments()})
}

// FromPricingItems líneas calculadas a respuesta.
func FromPricingItems(items []pricing.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = LineItemResponse{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Specification: it.Specification,
			Quantity:      pricing.FormatQuantity(it.Quantity),
			UnitPrice:     pricing.FormatMoney(it.UnitPrice),
			LineTotal:     pricing.FormatMoney(it.LineTotal),
		}
	}
	return out
}

// FromDocumentItems líneas persistidas a respuesta.
func FromDocumentItems(items []entity.DocumentItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = LineItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Specification: it.Specification,
			Quantity:      pricing.FormatQuantity(it.Quantity),
			UnitPrice:     pricing.FormatMoney(it.UnitPrice),
			LineTotal:     pricing.FormatMoney(it.LineTotal),
		}
	}
	return out
}

// TotalsFromDocument totales de un documento de cálculo.
func TotalsFromDocument(doc pricing.Document) TotalsResponse {
	a := doc.Adjustments
	return TotalsResponse{
		Subtotal:    pricing.FormatMoney(doc.Subtotal),
		ShippingFee: pricing.FormatMoney(a.ShippingFee),
		BankCharge:  pricing.FormatMoney(a.BankCharge),
		Discount:    pricing.FormatMoney(a.Discount),
		Others:      pricing.FormatMoney(a.OtherCharges),
		Total:       pricing.FormatMoney(doc.Total),
	}
}
