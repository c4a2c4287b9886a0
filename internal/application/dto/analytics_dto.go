package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// ── Resumen ───────────────────────────────────────────────────────────────────

// CustomerAnalyticsSummary GET /api/crm/analytics/summary.
type CustomerAnalyticsSummary struct {
	Segments            map[string]int  `json:"segments"`       // conteo por segmento persistido
	Activity            map[string]int  `json:"activity"`       // active|cooling|lapsed, derivado al leer
	TotalCustomers      int             `json:"total_customers"`
	GrowthPercent       decimal.Decimal `json:"growth_percent"` // nuevas relaciones: ventana actual vs anterior
	TotalRevenue        decimal.Decimal `json:"total_revenue"`  // Σ total_spent
	AvgOrderValue       decimal.Decimal `json:"avg_order_value"`
	RecentActivityCount int             `json:"recent_activity_count"` // relaciones con interacción en la ventana actual
}

// ── Insights detallados ───────────────────────────────────────────────────────

// FunnelStageDTO etapa del embudo.
type FunnelStageDTO struct {
	Stage          string `json:"stage"`
	Count          int    `json:"count"`
	Percentage     int    `json:"percentage"`      // % respecto a la etapa anterior
	ConversionRate int    `json:"conversion_rate"` // % hacia la siguiente etapa
	Estimated      bool   `json:"estimated"`       // true = estimación provisional, no medida
}

// MetricDTO métrica de la ventana actual comparada con la anterior.
type MetricDTO struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Growth   decimal.Decimal `json:"growth"`
	Trend    string          `json:"trend"` // up|down|stable
}

// BusinessMetricsDTO ingresos, reservas, ticket promedio y satisfacción.
type BusinessMetricsDTO struct {
	Revenue       MetricDTO `json:"revenue"`
	Bookings      MetricDTO `json:"bookings"`
	AvgOrderValue MetricDTO `json:"avg_order_value"`
	Satisfaction  MetricDTO `json:"satisfaction"`
}

// CustomerActionsDTO acciones sugeridas al vendedor.
type CustomerActionsDTO struct {
	NewCustomers       int `json:"new_customers"`
	ReturningCustomers int `json:"returning_customers"`
	LapsedCustomers    int `json:"lapsed_customers"`
	FollowUpsDue       int `json:"follow_ups_due"`
}

// PeriodDTO rango de fechas en RFC 3339.
type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PeriodComparisonDTO ventanas usadas en las comparaciones.
type PeriodComparisonDTO struct {
	Current  PeriodDTO `json:"current"`
	Previous PeriodDTO `json:"previous"`
}

// DetailedCustomerInsights GET /api/crm/analytics/insights.
type DetailedCustomerInsights struct {
	Funnel          []FunnelStageDTO    `json:"funnel"`
	BusinessMetrics BusinessMetricsDTO  `json:"business_metrics"`
	CustomerActions CustomerActionsDTO  `json:"customer_actions"`
	Period          PeriodComparisonDTO `json:"period"`
}

// ── Vista general ─────────────────────────────────────────────────────────────

// LocationDTO localidad con su participación.
type LocationDTO struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// CustomerOverview GET /api/crm/customers/overview.
type CustomerOverview struct {
	SegmentCounts      map[string]int `json:"segment_counts"`
	TotalCustomers     int            `json:"total_customers"`
	TopLocations       []LocationDTO  `json:"top_locations"`
	LocationsEstimated bool           `json:"locations_estimated"` // true = distribución ilustrativa
}

// ── Hábitos ───────────────────────────────────────────────────────────────────

// BehavioralInsights GET /api/crm/analytics/behavior.
type BehavioralInsights struct {
	BookingsAnalyzed        int             `json:"bookings_analyzed"`
	PeakHour                *int            `json:"peak_hour"` // nil sin reservas
	PeakHourBookings        int             `json:"peak_hour_bookings"`
	TopService              string          `json:"top_service"`
	TopServiceBookings      int             `json:"top_service_bookings"`
	WeekendPremium          decimal.Decimal `json:"weekend_premium"`
	WeekendPremiumEstimated bool            `json:"weekend_premium_estimated"`
	Timezone                string          `json:"timezone"`
}

// ── Formas vacías ─────────────────────────────────────────────────────────────

// SegmentCounts mapa con todas las claves de segmento en cero.
func SegmentCounts() map[string]int {
	out := make(map[string]int, 4)
	for _, s := range entity.Segments() {
		out[string(s)] = 0
	}
	return out
}

// ActivityCounts mapa con todos los estados de recencia en cero.
func ActivityCounts() map[string]int {
	return map[string]int{
		string(entity.ActivityActive):  0,
		string(entity.ActivityCooling): 0,
		string(entity.ActivityLapsed):  0,
	}
}

// EmptyAnalyticsSummary resumen de un vendedor sin negocio.
func EmptyAnalyticsSummary() *CustomerAnalyticsSummary {
	return &CustomerAnalyticsSummary{
		Segments:      SegmentCounts(),
		Activity:      ActivityCounts(),
		GrowthPercent: decimal.Zero,
		TotalRevenue:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
	}
}

func emptyMetric() MetricDTO {
	return MetricDTO{Current: decimal.Zero, Previous: decimal.Zero, Growth: decimal.Zero, Trend: "stable"}
}

// EmptyInsights insights de un vendedor sin negocio: cuatro etapas en cero.
func EmptyInsights(period PeriodComparisonDTO) *DetailedCustomerInsights {
	return &DetailedCustomerInsights{
		Funnel: []FunnelStageDTO{
			{Stage: "inquiries", Percentage: 100, Estimated: true},
			{Stage: "bookings"},
			{Stage: "completions"},
			{Stage: "repeat"},
		},
		BusinessMetrics: BusinessMetricsDTO{
			Revenue:       emptyMetric(),
			Bookings:      emptyMetric(),
			AvgOrderValue: emptyMetric(),
			Satisfaction:  emptyMetric(),
		},
		Period: period,
	}
}

// EmptyOverview vista general de un vendedor sin negocio.
func EmptyOverview() *CustomerOverview {
	return &CustomerOverview{SegmentCounts: SegmentCounts(), TopLocations: []LocationDTO{}}
}

// EmptyBehavioralInsights hábitos de un vendedor sin negocio.
func EmptyBehavioralInsights(timezone string) *BehavioralInsights {
	return &BehavioralInsights{
		WeekendPremium:          decimal.NewFromInt(15),
		WeekendPremiumEstimated: true,
		Timezone:                timezone,
	}
}
