package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/seller-crm/internal/domain/analytics"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

func booking(at time.Time, service string, amount int64) *entity.Booking {
	return &entity.Booking{
		Service:   service,
		Amount:    decimal.NewFromInt(amount),
		Status:    entity.BookingStatusCompleted,
		CreatedAt: at,
	}
}

// 2026-10-12 es lunes; 2026-10-17 es sábado.
var (
	monday   = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
)

func TestPeakHour_ModaEnZonaHoraria(t *testing.T) {
	bookings := []*entity.Booking{
		booking(monday.Add(9*time.Hour), "Corte", 100),
		booking(monday.Add(9*time.Hour+30*time.Minute), "Corte", 100),
		booking(monday.Add(14*time.Hour), "Tinte", 100),
	}

	hour, count, ok := analytics.PeakHour(bookings, time.UTC)
	assert.True(t, ok)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 2, count)

	ist := time.FixedZone("IST", 5*3600+1800)
	hour, _, _ = analytics.PeakHour(bookings, ist)
	assert.Equal(t, 14, hour) // 09:00 UTC → 14:30 IST
}

func TestPeakHour_EmpateHoraTemprana(t *testing.T) {
	bookings := []*entity.Booking{
		booking(monday.Add(18*time.Hour), "A", 1),
		booking(monday.Add(8*time.Hour), "A", 1),
	}
	hour, _, _ := analytics.PeakHour(bookings, time.UTC)
	assert.Equal(t, 8, hour)

	_, _, ok := analytics.PeakHour(nil, time.UTC)
	assert.False(t, ok)
}

func TestTopService(t *testing.T) {
	bookings := []*entity.Booking{
		booking(monday, "Masaje", 1),
		booking(monday, "Corte", 1),
		booking(monday, "Masaje", 1),
		booking(monday, "Corte", 1),
		booking(monday, "Facial", 1),
	}
	name, count := analytics.TopService(bookings)
	assert.Equal(t, "Corte", name)
	assert.Equal(t, 2, count)
}

func TestWeekendPremium(t *testing.T) {
	bookings := []*entity.Booking{
		booking(monday, "A", 100),
		booking(monday, "A", 100),
		booking(saturday, "A", 150),
	}
	premium, estimated := analytics.WeekendPremium(bookings, time.UTC)
	assert.False(t, estimated)
	assert.Equal(t, "50", premium.String())
}

func TestWeekendPremium_SinDatosUsaDefecto(t *testing.T) {
	premium, estimated := analytics.WeekendPremium([]*entity.Booking{booking(monday, "A", 100)}, time.UTC)
	assert.True(t, estimated)
	assert.True(t, premium.Equal(decimal.NewFromInt(15)))

	cancelled := booking(saturday, "A", 500)
	cancelled.Status = entity.BookingStatusCancelled
	premium, estimated = analytics.WeekendPremium([]*entity.Booking{booking(monday, "A", 100), cancelled}, time.UTC)
	assert.True(t, estimated)
	assert.True(t, premium.Equal(decimal.NewFromInt(15)))
}

func TestTotalsIn(t *testing.T) {
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	curr, prev := analytics.Windows(now, 30)
	five := decimal.NewFromInt(5)
	four := decimal.NewFromInt(4)

	inWindow := booking(now.AddDate(0, 0, -1), "A", 300)
	inWindow.Rating = &five
	inWindow2 := booking(now.AddDate(0, 0, -2), "A", 100)
	inWindow2.Rating = &four
	old := booking(now.AddDate(0, 0, -45), "A", 1000)
	cancelled := booking(now.AddDate(0, 0, -3), "A", 999)
	cancelled.Status = entity.BookingStatusCancelled

	all := []*entity.Booking{inWindow, inWindow2, old, cancelled}

	c := analytics.TotalsIn(all, curr)
	assert.Equal(t, 2, c.Bookings)
	assert.Equal(t, "400", c.Revenue.String())
	assert.Equal(t, "200", c.AvgOrder.String())
	assert.Equal(t, "4.5", c.Satisfaction.String())

	p := analytics.TotalsIn(all, prev)
	assert.Equal(t, 1, p.Bookings)
	assert.True(t, p.Satisfaction.IsZero())
}
