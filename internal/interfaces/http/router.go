package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngestionUC *crm.IngestionUseCase
	CustomerUC  *crm.CustomerUseCase
	AnalyticsUC *crm.AnalyticsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo /api/crm requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/crm", AuthMiddleware(deps.JWTSecret))

	// Eventos del ciclo de reservas (token de servicio)
	events := api.Group("/events", RequireRole(jwt.RoleService))
	eventHandler := NewEventHandler(deps.IngestionUC)
	events.Post("/booking-committed", eventHandler.BookingCommitted)

	sellerOnly := RequireRole(jwt.RoleSeller, jwt.RoleAdmin)

	// Analítica
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analytics := api.Group("/analytics", sellerOnly)
	analytics.Get("/summary", analyticsHandler.Summary)
	analytics.Get("/insights", analyticsHandler.Insights)
	analytics.Get("/behavior", analyticsHandler.Behavior)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", sellerOnly)
	customers.Get("/overview", analyticsHandler.Overview)
	customers.Get("/", customerHandler.List)
	customers.Get("/:customerId", customerHandler.Detail)
	customers.Get("/:customerId/notes", customerHandler.ListNotes)
	customers.Get("/:customerId/notes/:noteId", customerHandler.GetNote)
	customers.Post("/:customerId/notes", customerHandler.AddNote)
	customers.Put("/:customerId/segment", customerHandler.UpdateSegment)
}
