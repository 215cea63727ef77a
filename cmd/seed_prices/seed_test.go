package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog_UTF8ConEncabezado(t *testing.T) {
	csv := "sku;name;base_price;unit\n" +
		"bc-001;Tarjetas 14pt;39.99;pcs\n" +
		"fl-002; Volantes A5 ;\"1,250.005\";\n" +
		"bc-001;Repetido;1;pcs\n"

	rows, err := readCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2, "encabezado y SKU repetido se omiten")
	assert.Equal(t, "BC-001", rows[0].SKU)
	assert.Equal(t, "39.99", rows[0].BasePrice.StringFixed(2))
	assert.Equal(t, "Volantes A5", rows[1].Name)
	assert.Equal(t, "1250.01", rows[1].BasePrice.StringFixed(2))
	assert.Equal(t, "pcs", rows[1].Unit)
}

func TestReadCatalog_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("ST-01;Stickers diseño único;12.5;rollo\n")
	require.NoError(t, err)

	rows, err := readCatalog(strings.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Stickers diseño único", rows[0].Name)
	assert.Equal(t, "rollo", rows[0].Unit)
}

func TestReadCatalog_PrecioInvalido(t *testing.T) {
	_, err := readCatalog(strings.NewReader("A;Uno;10\nB;Dos;caro\n"))
	assert.ErrorContains(t, err, "línea 2")
}

func TestWriteSQL_Idempotente(t *testing.T) {
	rows, err := readCatalog(strings.NewReader("bc-001;Tarjeta O'Neil;39.99;pcs\n"))
	require.NoError(t, err)

	var first, second bytes.Buffer
	const company = "11111111-1111-1111-1111-111111111111"
	require.NoError(t, writeSQL(&first, company, rows))
	require.NoError(t, writeSQL(&second, company, rows))

	sql := first.String()
	assert.Equal(t, sql, second.String(), "mismos datos, mismos ids")
	assert.Contains(t, sql, "'NEW', 'Cliente nuevo', 1.1000")
	assert.Contains(t, sql, "'PREMIER', 'Premier', 0.9000")
	assert.Contains(t, sql, "'Tarjeta O''Neil', 39.99, 'pcs'")
	assert.Equal(t, 2, strings.Count(sql, "ON CONFLICT"))

	assert.Error(t, writeSQL(&bytes.Buffer{}, "no-uuid", rows))
}
