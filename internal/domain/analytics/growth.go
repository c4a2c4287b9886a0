// Package analytics contiene las fórmulas puras del agregador de relaciones:
// ventanas de comparación, crecimiento porcentual, embudo de conversión,
// hábitos de reserva y extracción de ubicaciones.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Tendencias de una métrica entre ventanas.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Window intervalo semiabierto [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains indica si t cae dentro de la ventana.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows devuelve la ventana actual (los últimos `days` días hasta now) y la inmediatamente anterior.
func Windows(now time.Time, days int) (current, previous Window) {
	span := time.Duration(days) * 24 * time.Hour
	current = Window{Start: now.Add(-span), End: now}
	previous = Window{Start: now.Add(-2 * span), End: current.Start}
	return current, previous
}

// GrowthPercent (curr-prev)/prev*100 si prev>0; 100 si curr>0; si no 0. Redondeado a 2 decimales.
func GrowthPercent(curr, prev decimal.Decimal) decimal.Decimal {
	if prev.IsPositive() {
		return curr.Sub(prev).Div(prev).Mul(hundred).Round(2)
	}
	if curr.IsPositive() {
		return hundred
	}
	return decimal.Zero
}

// GrowthPercentInt variante para conteos.
func GrowthPercentInt(curr, prev int) decimal.Decimal {
	return GrowthPercent(decimal.NewFromInt(int64(curr)), decimal.NewFromInt(int64(prev)))
}

// Trend clasifica un crecimiento.
func Trend(growth decimal.Decimal) string {
	switch {
	case growth.IsPositive():
		return TrendUp
	case growth.IsNegative():
		return TrendDown
	default:
		return TrendStable
	}
}

// Comparison valor actual contra la ventana anterior.
type Comparison struct {
	Current  decimal.Decimal
	Previous decimal.Decimal
	Growth   decimal.Decimal
	Trend    string
}

// Compare arma la comparación entre ventanas con la fórmula de crecimiento común.
func Compare(curr, prev decimal.Decimal) Comparison {
	g := GrowthPercent(curr, prev)
	return Comparison{Current: curr, Previous: prev, Growth: g, Trend: Trend(g)}
}

// SafeDiv a/b redondeado a 2 decimales; 0 si b es cero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b).Round(2)
}
