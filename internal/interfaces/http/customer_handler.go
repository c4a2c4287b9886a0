package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-crm/internal/application/crm"
	"github.com/jhoicas/seller-crm/internal/application/dto"
)

// CustomerHandler maneja el listado, detalle, notas y segmento de los clientes del vendedor.
type CustomerHandler struct {
	uc *crm.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *crm.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listado de clientes del negocio
// @Description  Búsqueda libre por nombre, email o teléfono; filtros por segmento y estado.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Texto a buscar"
// @Param        segment      query  string  false  "new|regular|vip|inactive"
// @Param        status       query  string  false  "active|inactive|blocked"
// @Param        page         query  int     false  "Página (default 1)"
// @Param        limit        query  int     false  "Tamaño de página (default 20, max 100)"
// @Param        business_id  query  string  false  "Negocio explícito (debe pertenecer al vendedor)"
// @Success      200  {object}  dto.CustomerList
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/crm/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q dto.CustomerListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.Context(), scopeFrom(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle del cliente
// @Description  Perfil de la relación, notas, comunicaciones y reservas recientes.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        customerId  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerDetail
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/{customerId} [get]
func (h *CustomerHandler) Detail(c *fiber.Ctx) error {
	out, err := h.uc.Detail(c.Context(), scopeFrom(c), c.Params("customerId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListNotes notas del cliente, paginadas.
// GET /api/crm/customers/:customerId/notes
func (h *CustomerHandler) ListNotes(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.ListNotes(c.Context(), scopeFrom(c), c.Params("customerId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetNote GET /api/crm/customers/:customerId/notes/:noteId
func (h *CustomerHandler) GetNote(c *fiber.Ctx) error {
	out, err := h.uc.GetNote(c.Context(), scopeFrom(c), c.Params("customerId"), c.Params("noteId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddNote godoc
// @Summary      Agregar nota sobre el cliente
// @Description  Requiere relación existente. Una nota follow-up con fecha programa el seguimiento.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        customerId  path  string              true  "ID del cliente"
// @Param        body        body  dto.AddNoteRequest  true  "Nota"
// @Success      201  {object}  dto.NoteDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/{customerId}/notes [post]
func (h *CustomerHandler) AddNote(c *fiber.Ctx) error {
	var in dto.AddNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddNote(c.Context(), scopeFrom(c), c.Params("customerId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSegment godoc
// @Summary      Asignar segmento manualmente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        customerId  path  string                    true  "ID del cliente"
// @Param        body        body  dto.UpdateSegmentRequest  true  "Segmento"
// @Success      200  {object}  dto.CustomerProfileDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/crm/customers/{customerId}/segment [put]
func (h *CustomerHandler) UpdateSegment(c *fiber.Ctx) error {
	var in dto.UpdateSegmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateSegment(c.Context(), scopeFrom(c), c.Params("customerId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
