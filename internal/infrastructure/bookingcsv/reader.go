// Package bookingcsv lee exportaciones CSV de reservas confirmadas del ciclo de reservas.
//
// Columnas esperadas (con encabezado, en cualquier orden):
//
//	booking_id,business_id,customer_id,amount,service,status,created_at
//
// created_at en RFC3339. Las exportaciones antiguas vienen en ISO-8859-1.
package bookingcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

var requiredColumns = []string{"booking_id", "business_id", "customer_id", "amount", "created_at"}

// Options opciones de lectura.
type Options struct {
	Charset string // utf-8 (default) | iso-8859-1 | latin1
	Comma   rune   // default ','
}

// RowError fila que no se pudo interpretar.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// Read devuelve los eventos válidos y los errores por fila. Solo falla del todo si el
// encabezado es inválido o el archivo no se puede leer.
func Read(r io.Reader, opts Options) ([]entity.BookingCommitted, []error, error) {
	switch strings.ToLower(opts.Charset) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("charset no soportado: %q", opts.Charset)
	}

	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var (
		events  []entity.BookingCommitted
		rowErrs []error
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Err: err})
			continue
		}
		evt, err := parseRow(rec, idx)
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Err: err})
			continue
		}
		events = append(events, evt)
	}
	return events, rowErrs, nil
}

func parseRow(rec []string, idx map[string]int) (entity.BookingCommitted, error) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	amount, err := decimal.NewFromString(get("amount"))
	if err != nil {
		return entity.BookingCommitted{}, fmt.Errorf("amount inválido: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, get("created_at"))
	if err != nil {
		return entity.BookingCommitted{}, fmt.Errorf("created_at inválido: %w", err)
	}
	evt := entity.BookingCommitted{
		BookingID:  get("booking_id"),
		BusinessID: get("business_id"),
		CustomerID: get("customer_id"),
		Amount:     amount,
		Service:    get("service"),
		Status:     get("status"),
		CreatedAt:  createdAt,
	}
	if evt.BookingID == "" || evt.BusinessID == "" || evt.CustomerID == "" {
		return entity.BookingCommitted{}, errors.New("booking_id, business_id y customer_id son obligatorios")
	}
	if evt.Status == entity.BookingStatusCancelled {
		return entity.BookingCommitted{}, errors.New("reserva cancelada")
	}
	return evt, nil
}
