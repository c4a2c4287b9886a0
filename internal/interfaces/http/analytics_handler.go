package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-crm/internal/application/crm"
)

// AnalyticsHandler maneja los endpoints de analítica de clientes.
type AnalyticsHandler struct {
	uc *crm.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *crm.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de clientes por segmento
// @Description  Conteos por segmento y actividad, crecimiento de clientes (30 días contra los 30 anteriores)
//               e ingresos acumulados. Un vendedor sin negocio recibe todo en cero.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        business_id  query  string  false  "Negocio explícito"
// @Success      200  {object}  dto.CustomerAnalyticsSummary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/crm/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), scopeFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Insights godoc
// @Summary      Embudo y métricas por ventana
// @Description  Consultas (estimadas) → reservas → completadas → recurrentes, métricas de negocio
//               de la ventana actual contra la anterior y acciones sugeridas.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DetailedCustomerInsights
// @Router       /api/crm/analytics/insights [get]
func (h *AnalyticsHandler) Insights(c *fiber.Ctx) error {
	out, err := h.uc.Insights(c.Context(), scopeFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Behavior godoc
// @Summary      Hábitos de reserva
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BehavioralInsights
// @Router       /api/crm/analytics/behavior [get]
func (h *AnalyticsHandler) Behavior(c *fiber.Ctx) error {
	out, err := h.uc.Behavior(c.Context(), scopeFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Vista general de clientes
// @Description  Conteo por segmento y ubicaciones principales; sin datos de ubicación devuelve una
//               distribución ilustrativa con locations_estimated=true.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerOverview
// @Router       /api/crm/customers/overview [get]
func (h *AnalyticsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context(), scopeFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
