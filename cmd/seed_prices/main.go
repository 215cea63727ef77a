// seed_prices genera un script SQL con las listas de precios por defecto
// (NEW, REGULAR, PREMIER) y el catálogo de productos de una empresa a partir
// de un CSV "sku;name;base_price;unit" en UTF-8 o ISO-8859-1.
//
// Uso: go run ./cmd/seed_prices <company_id> [catalogo.csv] [salida.sql]
// Por defecto lee catalogo.csv y escribe seed_prices.sql en el directorio actual.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed_prices <company_id> [catalogo.csv] [salida.sql]")
		os.Exit(2)
	}
	companyID := os.Args[1]
	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}
	outPath := "seed_prices.sql"
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, companyID, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d listas, %d productos\n", outPath, len(defaultLists), len(rows))
}
