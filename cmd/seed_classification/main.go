// seed_classification genera un script SQL idempotente para poblar la jerarquía de clasificación
// a partir de un CSV plano (una fila por industria básica con sus tres ancestros).
//
// Uso: go run ./cmd/seed_classification [-charset latin1] [-schema classification] [-out seed.sql] clasificacion.csv
// Columnas esperadas (con encabezado): mes_code, macro_economic_sector, sect_code, sector_name,
// ind_code, industry_name, basic_ind_code, basic_industry_name, definition.
// No se conecta a la base: el script se aplica fuera de banda.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var columns = []string{
	"mes_code", "macro_economic_sector",
	"sect_code", "sector_name",
	"ind_code", "industry_name",
	"basic_ind_code", "basic_industry_name", "definition",
}

type row struct {
	mesCode, mesName     string
	sectCode, sectName   string
	indCode, indName     string
	basicCode, basicName string
	definition           string
}

// catalog niveles deduplicados por código; la primera aparición gana.
type catalog struct {
	mes, sectors, industries, basics map[string][]string
}

func main() {
	charset := pflag.String("charset", "utf-8", "codificación del CSV: utf-8 o latin1 (ISO-8859-1)")
	schema := pflag.String("schema", "classification", "esquema destino; vacío para tablas sin calificar (SQLite)")
	outPath := pflag.String("out", "", "archivo de salida; por defecto stdout")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: seed_classification [flags] clasificacion.csv")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	f, err := os.Open(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	in, err := decodeReader(f, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codificación: %v\n", err)
		os.Exit(1)
	}
	rows, err := readRows(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}

	cat := buildCatalog(rows)
	if err := writeSeed(out, cat, *schema); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d sectores macro, %d sectores, %d industrias, %d industrias básicas\n",
		len(cat.mes), len(cat.sectors), len(cat.industries), len(cat.basics))
}

// decodeReader envuelve el CSV con el decodificador del charset indicado.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}
}

// readRows lee el CSV; el encabezado puede venir en cualquier orden.
func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok && c != "definition" {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var rows []row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		rw := row{
			mesCode: get("mes_code"), mesName: get("macro_economic_sector"),
			sectCode: get("sect_code"), sectName: get("sector_name"),
			indCode: get("ind_code"), indName: get("industry_name"),
			basicCode: get("basic_ind_code"), basicName: get("basic_industry_name"),
			definition: get("definition"),
		}
		if rw.mesCode == "" || rw.sectCode == "" || rw.indCode == "" || rw.basicCode == "" {
			return nil, fmt.Errorf("línea %d: códigos vacíos", line)
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func buildCatalog(rows []row) catalog {
	cat := catalog{
		mes:        map[string][]string{},
		sectors:    map[string][]string{},
		industries: map[string][]string{},
		basics:     map[string][]string{},
	}
	put := func(m map[string][]string, code string, values ...string) {
		if _, ok := m[code]; !ok {
			m[code] = values
		}
	}
	for _, r := range rows {
		put(cat.mes, r.mesCode, r.mesCode, r.mesName)
		put(cat.sectors, r.sectCode, r.sectCode, r.sectName, r.mesCode)
		put(cat.industries, r.indCode, r.indCode, r.indName, r.sectCode)
		put(cat.basics, r.basicCode, r.basicCode, r.basicName, r.definition, r.indCode)
	}
	return cat
}

// writeSeed escribe los cuatro INSERT en orden de dependencia, con salida estable por código.
func writeSeed(w io.Writer, cat catalog, schema string) error {
	var b strings.Builder
	b.WriteString("-- Jerarquía de clasificación industrial (idempotente)\n")
	b.WriteString("-- Generado por seed_classification\n\n")

	writeInsert(&b, table(schema, "macro_economic_sectors"), "mes_code",
		[]string{"mes_code", "macro_economic_sector"}, cat.mes, -1)
	writeInsert(&b, table(schema, "sectors"), "sect_code",
		[]string{"sect_code", "sector_name", "mes_code"}, cat.sectors, -1)
	writeInsert(&b, table(schema, "industries"), "ind_code",
		[]string{"ind_code", "industry_name", "sect_code"}, cat.industries, -1)
	writeInsert(&b, table(schema, "basic_industries"), "basic_ind_code",
		[]string{"basic_ind_code", "basic_industry_name", "definition", "ind_code"}, cat.basics, 2)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeInsert emite un INSERT multi-fila; nullableCol (>= 0) se escribe NULL si está vacía.
func writeInsert(b *strings.Builder, tbl, key string, cols []string, rows map[string][]string, nullableCol int) {
	if len(rows) == 0 {
		return
	}
	codes := make([]string, 0, len(rows))
	for c := range rows {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	fmt.Fprintf(b, "INSERT INTO %s (%s) VALUES\n", tbl, strings.Join(cols, ", "))
	for i, code := range codes {
		vals := make([]string, len(rows[code]))
		for j, v := range rows[code] {
			if j == nullableCol && v == "" {
				vals[j] = "NULL"
				continue
			}
			vals[j] = "'" + escapeSQL(v) + "'"
		}
		sep := ","
		if i == len(codes)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "  (%s)%s\n", strings.Join(vals, ", "), sep)
	}
	fmt.Fprintf(b, "ON CONFLICT (%s) DO NOTHING;\n\n", key)
}

func table(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
