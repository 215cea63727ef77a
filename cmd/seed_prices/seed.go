package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/domain/pricing"
)

// catalogRow producto leído del CSV (sku;name;base_price;unit).
type catalogRow struct {
	SKU       string
	Name      string
	BasePrice decimal.Decimal
	Unit      string
}

type seedList struct {
	Code       string
	Name       string
	Multiplier string
}

// defaultLists listas iniciales de cada empresa.
var defaultLists = []seedList{
	{entity.PriceListNew, "Cliente nuevo", "1.1000"},
	{entity.PriceListRegular, "Regular", "1.0000"},
	{entity.PriceListPremier, "Premier", "0.9000"},
}

// seedNamespace base de los UUID deterministas (mismo sku = mismo id en cada corrida).
var seedNamespace = uuid.MustParse("6f1c2b8e-0d8a-4c55-9a57-3c2f61f0a1d4")

// readCatalog lee el CSV separado por ';'. Si el archivo no es UTF-8 válido se
// asume ISO-8859-1 (exportaciones de Excel). La primera fila es encabezado si su
// precio no es numérico.
func readCatalog(r io.Reader) ([]catalogRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	seen := map[string]bool{}
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line+1, err)
		}
		line++
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 3 columnas (sku;name;base_price)", line)
		}
		price, ok := pricing.Parse(rec[2])
		if !ok {
			if line == 1 {
				continue // encabezado
			}
			return nil, fmt.Errorf("línea %d: precio %q no numérico", line, rec[2])
		}
		sku := strings.ToUpper(strings.TrimSpace(rec[0]))
		if sku == "" || seen[sku] {
			continue
		}
		seen[sku] = true
		unit := "pcs"
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			unit = strings.TrimSpace(rec[3])
		}
		rows = append(rows, catalogRow{
			SKU:       sku,
			Name:      strings.TrimSpace(rec[1]),
			BasePrice: pricing.NormalizeMoney(price),
			Unit:      unit,
		})
	}
	return rows, nil
}

// writeSQL genera INSERTs idempotentes (ON CONFLICT) para listas y productos.
func writeSQL(w io.Writer, companyID string, rows []catalogRow) error {
	company, err := uuid.Parse(companyID)
	if err != nil {
		return fmt.Errorf("company_id inválido: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "-- Catálogo y listas de precios para la empresa %s\n\n", company)

	b.WriteString("INSERT INTO price_lists (id, company_id, code, name, multiplier) VALUES\n")
	for i, l := range defaultLists {
		id := uuid.NewSHA1(seedNamespace, []byte(company.String()+":list:"+l.Code))
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s)%s\n",
			id, company, l.Code, escapeSQL(l.Name), l.Multiplier, sep(i, len(defaultLists)))
	}
	b.WriteString("ON CONFLICT (company_id, code) DO UPDATE SET name = EXCLUDED.name, multiplier = EXCLUDED.multiplier, updated_at = now();\n\n")

	if len(rows) > 0 {
		b.WriteString("INSERT INTO products (id, company_id, sku, name, base_price, unit_measure) VALUES\n")
		for i, r := range rows {
			id := uuid.NewSHA1(seedNamespace, []byte(company.String()+":sku:"+r.SKU))
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s, '%s')%s\n",
				id, company, escapeSQL(r.SKU), escapeSQL(r.Name), pricing.FormatMoney(r.BasePrice), escapeSQL(r.Unit), sep(i, len(rows)))
		}
		b.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, base_price = EXCLUDED.base_price, unit_measure = EXCLUDED.unit_measure, updated_at = now();\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
