package bookingcsv_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/seller-crm/internal/infrastructure/bookingcsv"
)

const sample = `booking_id,business_id,customer_id,amount,service,status,created_at
b-1,biz-1,cust-1,500.00,Masaje,confirmed,2026-03-01T10:00:00Z
b-2,biz-1,cust-1,abc,Masaje,confirmed,2026-03-02T10:00:00Z
b-3,biz-1,,100,Facial,confirmed,2026-03-03T10:00:00Z
b-4,biz-1,cust-2,250,Facial,cancelled,2026-03-04T10:00:00Z
`

func TestRead_FilasValidasYErrores(t *testing.T) {
	events, rowErrs, err := bookingcsv.Read(strings.NewReader(sample), bookingcsv.Options{})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "b-1", events[0].BookingID)
	assert.True(t, events[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 2026, events[0].CreatedAt.Year())

	require.Len(t, rowErrs, 3)
	var rowErr *bookingcsv.RowError
	require.ErrorAs(t, rowErrs[0], &rowErr)
	assert.Equal(t, 3, rowErr.Line)
}

func TestRead_EncabezadoIncompleto(t *testing.T) {
	_, _, err := bookingcsv.Read(strings.NewReader("booking_id,amount\nb-1,10\n"), bookingcsv.Options{})
	assert.Error(t, err)
}

func TestRead_Latin1(t *testing.T) {
	src := "booking_id;business_id;customer_id;amount;service;status;created_at\n" +
		"b-1;biz-1;cust-1;300;Depilación;confirmed;2026-03-01T10:00:00Z\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	events, rowErrs, err := bookingcsv.Read(bytes.NewBufferString(encoded), bookingcsv.Options{Charset: "latin1", Comma: ';'})
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, events, 1)
	assert.Equal(t, "Depilación", events[0].Service)
}
