package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// DefaultWeekendPremium prima de fin de semana que se informa cuando no hay datos para calcularla.
// Es un valor provisional, no una medición.
var DefaultWeekendPremium = decimal.NewFromInt(15)

// Billable indica si la reserva cuenta para ingresos (todo menos canceladas).
func Billable(b *entity.Booking) bool {
	return b != nil && b.Status != entity.BookingStatusCancelled
}

// PeakHour moda de la hora de creación en loc. Empates: la hora más temprana.
// ok es false si no hay reservas.
func PeakHour(bookings []*entity.Booking, loc *time.Location) (hour, count int, ok bool) {
	var hist [24]int
	for _, b := range bookings {
		if b == nil {
			continue
		}
		hist[b.CreatedAt.In(loc).Hour()]++
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	for h, n := range hist {
		if n > count {
			hour, count = h, n
		}
	}
	return hour, count, true
}

// TopService moda del nombre de servicio. Empates: orden alfabético.
func TopService(bookings []*entity.Booking) (service string, count int) {
	freq := make(map[string]int)
	for _, b := range bookings {
		if b == nil || b.Service == "" {
			continue
		}
		freq[b.Service]++
	}
	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if freq[name] > count {
			service, count = name, freq[name]
		}
	}
	return service, count
}

// WeekendPremium (promedioFinDeSemana - promedioEntreSemana) / promedioEntreSemana * 100.
// Si alguno de los promedios no está definido devuelve DefaultWeekendPremium con estimated=true.
func WeekendPremium(bookings []*entity.Booking, loc *time.Location) (premium decimal.Decimal, estimated bool) {
	var weekendSum, weekdaySum decimal.Decimal
	var weekendN, weekdayN int64
	for _, b := range bookings {
		if !Billable(b) {
			continue
		}
		switch b.CreatedAt.In(loc).Weekday() {
		case time.Saturday, time.Sunday:
			weekendSum = weekendSum.Add(b.Amount)
			weekendN++
		default:
			weekdaySum = weekdaySum.Add(b.Amount)
			weekdayN++
		}
	}
	if weekendN == 0 || weekdayN == 0 {
		return DefaultWeekendPremium, true
	}
	weekdayAvg := weekdaySum.Div(decimal.NewFromInt(weekdayN))
	if weekdayAvg.IsZero() {
		return DefaultWeekendPremium, true
	}
	weekendAvg := weekendSum.Div(decimal.NewFromInt(weekendN))
	return weekendAvg.Sub(weekdayAvg).Div(weekdayAvg).Mul(hundred).Round(2), false
}

// WindowTotals métricas de negocio de una ventana.
type WindowTotals struct {
	Revenue      decimal.Decimal
	Bookings     int
	AvgOrder     decimal.Decimal
	Satisfaction decimal.Decimal // promedio de calificaciones; 0 sin reseñas
}

// TotalsIn agrega las reservas facturables creadas dentro de la ventana.
func TotalsIn(bookings []*entity.Booking, w Window) WindowTotals {
	var out WindowTotals
	var ratingSum decimal.Decimal
	var rated int64
	for _, b := range bookings {
		if !Billable(b) || !w.Contains(b.CreatedAt) {
			continue
		}
		out.Revenue = out.Revenue.Add(b.Amount)
		out.Bookings++
		if b.Rating != nil {
			ratingSum = ratingSum.Add(*b.Rating)
			rated++
		}
	}
	out.AvgOrder = SafeDiv(out.Revenue, decimal.NewFromInt(int64(out.Bookings)))
	out.Satisfaction = SafeDiv(ratingSum, decimal.NewFromInt(rated))
	return out
}
