package analytics

import "math"

// Nombres de las etapas del embudo, en orden.
const (
	StageInquiries   = "inquiries"
	StageBookings    = "bookings"
	StageCompletions = "completions"
	StageRepeat      = "repeat"
)

// InquiryMultiplier estimación provisional de consultas por relación.
// No es un valor medido: se reemplaza cuando exista instrumentación de consultas.
const InquiryMultiplier = 1.5

// FunnelStage etapa del embudo con porcentajes enteros.
type FunnelStage struct {
	Name           string
	Count          int
	Percentage     int  // respecto a la etapa anterior; la primera siempre 100
	ConversionRate int  // hacia la siguiente etapa; la última 0
	Estimated      bool // true si Count es una estimación
}

// FunnelInput conteos de entrada del embudo.
type FunnelInput struct {
	Relationships int
	Bookings      int
	Completions   int
	Repeat        int
}

// EstimatedInquiries round(1.5 × relaciones).
func EstimatedInquiries(relationships int) int {
	return int(math.Round(InquiryMultiplier * float64(relationships)))
}

// BuildFunnel construye las cuatro etapas: consultas → reservas → completadas → recurrentes.
func BuildFunnel(in FunnelInput) []FunnelStage {
	stages := []FunnelStage{
		{Name: StageInquiries, Count: EstimatedInquiries(in.Relationships), Estimated: true},
		{Name: StageBookings, Count: in.Bookings},
		{Name: StageCompletions, Count: in.Completions},
		{Name: StageRepeat, Count: in.Repeat},
	}
	for i := range stages {
		if i == 0 {
			stages[i].Percentage = 100
		} else {
			stages[i].Percentage = roundedPercent(stages[i].Count, stages[i-1].Count)
		}
		if i < len(stages)-1 {
			stages[i].ConversionRate = roundedPercent(stages[i+1].Count, stages[i].Count)
		}
	}
	return stages
}

func roundedPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
