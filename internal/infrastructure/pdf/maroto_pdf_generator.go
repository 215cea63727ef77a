// Package pdf genera el PDF de cotizaciones y órdenes de venta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + TIN      │  COTIZACIÓN N° + Rev + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre + TIN + contacto                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción + especificación | P.Unit | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / Banco / Descuento / Otros / TOTAL│
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Cotizador-api/internal/application/ports"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

var _ ports.DocumentPDFRenderer = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DocumentPDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se imprimen con
// separador de miles en formato inglés (1,234.50).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.English)}
}

// document datos comunes de cotización y orden de venta para el layout.
type document struct {
	title    string
	number   string
	revision string
	date     time.Time
	extra    string // vigencia o fecha de entrega
	items    []entity.DocumentItem
	adj      entity.Adjustments
	subtotal decimal.Decimal
	total    decimal.Decimal
	notes    string
}

// RenderQuotation PDF de la cotización.
func (g *MarotoPDFGenerator) RenderQuotation(h ports.PDFHeader, q *entity.Quotation) ([]byte, error) {
	d := document{
		title:    "COTIZACIÓN",
		number:   q.Number,
		revision: q.RevisionLabel(),
		date:     q.CreatedAt,
		items:    q.Items,
		adj:      q.Adjustments,
		subtotal: q.Subtotal,
		total:    q.Total,
		notes:    q.Notes,
	}
	if q.ValidUntil != nil {
		d.extra = "Válida hasta: " + q.ValidUntil.Format("02/01/2006")
	}
	return g.render(h, d)
}

// RenderSalesOrder PDF de la orden de venta.
func (g *MarotoPDFGenerator) RenderSalesOrder(h ports.PDFHeader, o *entity.SalesOrder) ([]byte, error) {
	d := document{
		title:    "ORDEN DE VENTA",
		number:   o.Number,
		revision: fmt.Sprintf("R%d", o.Revision),
		date:     o.CreatedAt,
		items:    o.Items,
		adj:      o.Adjustments,
		subtotal: o.Subtotal,
		total:    o.Total,
		notes:    o.Notes,
	}
	if o.DueDate != nil {
		d.extra = "Entrega: " + o.DueDate.Format("02/01/2006")
	}
	return g.render(h, d)
}

func (g *MarotoPDFGenerator) render(h ports.PDFHeader, d document) ([]byte, error) {
	company := h.Company
	if company == nil {
		company = &entity.Company{}
	}
	customer := h.Customer
	if customer == nil {
		customer = &entity.Customer{}
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(d.title+" "+d.number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(d, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(h.Currency))
	m.AddRows(g.itemRows(d.items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(d, h.Currency))

	if strings.TrimSpace(d.notes) != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(14).Add(col.New(12).Add(
			text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(d.notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(d document, company *entity.Company) core.Row {
	right := []core.Component{
		text.New(d.title, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(d.number+"  "+d.revision, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
		}),
		text.New("Fecha: "+d.date.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorGray,
		}),
	}
	if d.extra != "" {
		right = append(right, text.New(d.extra, props.Text{
			Size: 8, Align: align.Right, Top: 17, Color: colorGray,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("TIN: "+nonEmpty(company.TaxID, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(right...),
	)
}

func companyRow(company *entity.Company) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(customer.Name, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("TIN: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.TaxID, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow(currency string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit ("+currency+")", 2, align.Right),
		h("Total ("+currency+")", 3, align.Right),
	)
}

// itemRows una fila por línea; la especificación va debajo del nombre.
func (g *MarotoPDFGenerator) itemRows(items []entity.DocumentItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		height := 7.0
		desc := []core.Component{
			text.New(nonEmpty(it.ProductName, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1}),
		}
		if spec := strings.TrimSpace(it.Specification); spec != "" {
			lines := strings.Count(spec, "\n") + 1
			height += 4 * float64(lines)
			desc = append(desc, text.New(spec, props.Text{Size: 7, Top: 5, Left: 3, Color: colorGray}))
		}
		rows = append(rows, row.New(height).Add(
			col.New(1).Add(text.New(pricing.FormatQuantity(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(desc...),
			col.New(2).Add(text.New(g.money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow bloque de totales; el descuento se muestra en negativo.
func (g *MarotoPDFGenerator) totalsRow(d document, currency string) core.Row {
	type entry struct {
		label string
		value string
	}
	entries := []entry{
		{"Subtotal:", g.money(d.subtotal)},
		{"Envío:", g.money(d.adj.ShippingFee)},
		{"Cargo bancario:", g.money(d.adj.BankCharge)},
		{"Descuento:", g.money(d.adj.Discount.Abs().Neg())},
		{"Otros:", g.money(d.adj.OtherCharges)},
	}

	labels := make([]core.Component, 0, len(entries)+1)
	values := make([]core.Component, 0, len(entries)+1)
	for i, e := range entries {
		top := float64(i * 5)
		labels = append(labels, text.New(e.label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values = append(values, text.New(e.value, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	top := float64(len(entries) * 5)
	labels = append(labels, text.New("TOTAL "+currency+":", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top + 1,
	}))
	values = append(values, text.New(g.money(d.total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top + 1,
	}))

	return row.New(top + 8).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money monto con 2 decimales y separador de miles: 1234567.5 -> "1,234,567.50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return FormatMoney(g.printer, d)
}

// FormatMoney formatea d con p sin pasar por float64.
func FormatMoney(p *message.Printer, d decimal.Decimal) string {
	s := pricing.FormatMoney(d)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := decimal.RequireFromString(intPart).IntPart()
	return sign + p.Sprintf("%d", n) + "." + frac
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
