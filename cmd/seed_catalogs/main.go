// seed_catalogs genera un script SQL idempotente para poblar los catálogos
// (estados de cliente, suscripciones y medios de descubrimiento) a partir de un CSV.
//
// Uso: go run ./cmd/seed_catalogs [-encoding auto|utf8|latin1] [-o salida.sql] catalogos.csv
//
// Columnas: kind,code,name[,monthly_fee]. kind es client_status, subscription o
// discovery_source; code solo aplica a suscripciones. Una primera fila con "kind" se toma como encabezado.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Tipos de catálogo admitidos en la columna kind.
const (
	kindClientStatus    = "client_status"
	kindSubscription    = "subscription"
	kindDiscoverySource = "discovery_source"
)

type row struct {
	kind string
	code string
	name string
	fee  decimal.Decimal
}

func main() {
	encoding := flag.String("encoding", "auto", "codificación del CSV: auto, utf8 o latin1")
	outPath := flag.String("o", "", "archivo de salida (por defecto stdout)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalogs [-encoding auto|utf8|latin1] [-o salida.sql] catalogos.csv")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	rows, err := parseCSV(raw, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d registros\n", len(rows))
}

// decode devuelve un lector UTF-8. En modo auto, un contenido que no es UTF-8 válido se trata como ISO-8859-1.
func decode(raw []byte, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))), nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()), nil
	case "auto", "":
		if utf8.Valid(raw) {
			return decode(raw, "utf8")
		}
		return decode(raw, "latin1")
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

func parseCSV(raw []byte, encoding string) ([]row, error) {
	r, err := decode(raw, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []row
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "kind") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 3 columnas", line)
		}
		rw := row{
			kind: strings.ToLower(strings.TrimSpace(rec[0])),
			code: strings.TrimSpace(rec[1]),
			name: strings.TrimSpace(rec[2]),
		}
		if rw.name == "" {
			return nil, fmt.Errorf("línea %d: name vacío", line)
		}
		switch rw.kind {
		case kindClientStatus, kindDiscoverySource:
		case kindSubscription:
			if rw.code == "" {
				return nil, fmt.Errorf("línea %d: la suscripción requiere code", line)
			}
			if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
				fee, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
				if err != nil || fee.IsNegative() {
					return nil, fmt.Errorf("línea %d: monthly_fee inválido", line)
				}
				rw.fee = fee.Round(2)
			}
		default:
			return nil, fmt.Errorf("línea %d: kind desconocido %q", line, rw.kind)
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func writeSQL(w io.Writer, rows []row) error {
	var b strings.Builder
	b.WriteString("-- Catálogos del gimnasio (generado por cmd/seed_catalogs)\n")
	b.WriteString("-- Idempotente: los registros existentes no se modifican.\n\n")
	for _, r := range rows {
		id := uuid.New().String()
		switch r.kind {
		case kindClientStatus:
			fmt.Fprintf(&b, "INSERT INTO client_statuses (id, name) VALUES ('%s', '%s') ON CONFLICT DO NOTHING;\n",
				id, escapeSQL(r.name))
		case kindDiscoverySource:
			fmt.Fprintf(&b, "INSERT INTO discovery_sources (id, name) VALUES ('%s', '%s') ON CONFLICT DO NOTHING;\n",
				id, escapeSQL(r.name))
		case kindSubscription:
			fmt.Fprintf(&b, "INSERT INTO subscriptions (id, code, name, monthly_fee) VALUES ('%s', '%s', '%s', %s) ON CONFLICT DO NOTHING;\n",
				id, escapeSQL(r.code), escapeSQL(r.name), r.fee.StringFixed(2))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
