package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/internal/application/dto"
	"github.com/jhoicas/seller-crm/internal/domain/entity"
)

// EventHandler recibe los eventos del ciclo de reservas.
type EventHandler struct {
	uc *crm.IngestionUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *crm.IngestionUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// BookingCommitted godoc
// @Summary      Reserva confirmada
// @Description  Aplica la reserva a la relación (negocio, cliente). Responde 202 con el resultado
//               (applied, duplicate, skipped, rejected o failed); los fallos se registran y no se propagan.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookingCommittedRequest  true  "Evento"
// @Success      202  {object}  dto.IngestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/crm/events/booking-committed [post]
func (h *EventHandler) BookingCommitted(c *fiber.Ctx) error {
	var in dto.BookingCommittedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res := h.uc.OnBookingCommitted(c.Context(), entity.BookingCommitted{
		BookingID:  in.BookingID,
		BusinessID: in.BusinessID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Service:    in.Service,
		Status:     in.Status,
		CreatedAt:  in.CreatedAt,
	})
	return c.Status(fiber.StatusAccepted).JSON(crm.IngestionResponse(res))
}
