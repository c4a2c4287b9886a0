// Package segmentation clasifica relaciones con clientes en niveles (tiers) a partir de sus contadores.
//
// La regla se recalcula completa en cada evaluación y funciona como trinquete:
// el resultado automático nunca baja el nivel almacenado. Las etiquetas de recencia
// (activo / enfriándose / perdido) se derivan al leer y no se persisten.
package segmentation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// Rules umbrales de la regla de segmentación.
type Rules struct {
	VIPBookings     int
	VIPSpend        decimal.Decimal
	RegularBookings int
}

// DefaultRules 10 reservas o 50000 de gasto → vip; 3 reservas → regular.
func DefaultRules() Rules {
	return Rules{
		VIPBookings:     10,
		VIPSpend:        decimal.NewFromInt(50000),
		RegularBookings: 3,
	}
}

// Classify aplica la regla sin trinquete: devuelve el nivel que indican los contadores
// o current si no alcanzan ningún umbral.
func (r Rules) Classify(current entity.Segment, totalBookings int, totalSpent decimal.Decimal) entity.Segment {
	switch {
	case totalBookings >= r.VIPBookings || totalSpent.GreaterThanOrEqual(r.VIPSpend):
		return entity.SegmentVIP
	case totalBookings >= r.RegularBookings:
		return entity.SegmentRegular
	default:
		return current
	}
}

// Evaluate devuelve el nivel resultante de una actualización automática.
// Solo cambia si el candidato está por encima del nivel actual.
func (r Rules) Evaluate(current entity.Segment, totalBookings int, totalSpent decimal.Decimal) entity.Segment {
	if current == "" {
		current = entity.SegmentNew
	}
	candidate := r.Classify(current, totalBookings, totalSpent)
	if Rank(candidate) > Rank(current) {
		return candidate
	}
	return current
}

// Rank orden del trinquete: new = inactive < regular < vip.
func Rank(s entity.Segment) int {
	switch s {
	case entity.SegmentVIP:
		return 2
	case entity.SegmentRegular:
		return 1
	default:
		return 0
	}
}

// Umbrales de recencia en días.
const (
	ActiveWithinDays  = 30
	CoolingWithinDays = 90
)

// Activity deriva el estado de recencia a partir de la última actividad.
// Sin actividad registrada se considera perdido.
func Activity(last *time.Time, now time.Time) entity.ActivityState {
	if last == nil {
		return entity.ActivityLapsed
	}
	age := now.Sub(*last)
	switch {
	case age <= ActiveWithinDays*24*time.Hour:
		return entity.ActivityActive
	case age <= CoolingWithinDays*24*time.Hour:
		return entity.ActivityCooling
	default:
		return entity.ActivityLapsed
	}
}
