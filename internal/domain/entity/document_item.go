package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// DocumentItem línea persistida de una cotización u orden de venta.
type DocumentItem struct {
	ID            string
	DocumentID    string
	Position      int
	ProductID     string
	ProductName   string
	Specification string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
}

// Adjustments cargos y descuento a nivel documento (compartido por cotización y orden).
type Adjustments struct {
	ShippingFee  decimal.Decimal
	BankCharge   decimal.Decimal
	Discount     decimal.Decimal
	OtherCharges decimal.Decimal
}

func toPricingItems(items []DocumentItem) []pricing.LineItem {
	out := make([]pricing.LineItem, len(items))
	for i, it := range items {
		out[i] = pricing.LineItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Specification: it.Specification,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineTotal:     it.LineTotal,
		}
	}
	return out
}

// fromPricing copia el resultado del cálculo conservando IDs existentes por posición.
func fromPricing(prev []DocumentItem, doc pricing.Document) ([]DocumentItem, Adjustments) {
	items := make([]DocumentItem, len(doc.Items))
	for i, li := range doc.Items {
		it := DocumentItem{
			Position:      i + 1,
			ProductID:     li.ProductID,
			ProductName:   li.ProductName,
			Specification: li.Specification,
			Quantity:      li.Quantity,
			UnitPrice:     li.UnitPrice,
			LineTotal:     li.LineTotal,
		}
		if i < len(prev) {
			it.ID = prev[i].ID
			it.DocumentID = prev[i].DocumentID
		}
		items[i] = it
	}
	a := doc.Adjustments
	return items, Adjustments{
		ShippingFee:  a.ShippingFee,
		BankCharge:   a.BankCharge,
		Discount:     a.Discount,
		OtherCharges: a.OtherCharges,
	}
}

func (a Adjustments) toPricing() pricing.Adjustments {
	return pricing.Adjustments{
		ShippingFee:  a.ShippingFee,
		BankCharge:   a.BankCharge,
		Discount:     a.Discount,
		OtherCharges: a.OtherCharges,
	}
}

// FormatDocumentNumber arma el número visible: <PREFIX>-<YYYY>-<0001>.
func FormatDocumentNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}
