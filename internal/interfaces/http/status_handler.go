package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
)

// StatusHandler historial de estados (/api/customers/:id/statuses). Solo altas.
type StatusHandler struct {
	uc *usecase.StatusUseCase
}

// NewStatusHandler construye el handler.
func NewStatusHandler(uc *usecase.StatusUseCase) *StatusHandler {
	return &StatusHandler{uc: uc}
}

// List GET /api/customers/:id/statuses
func (h *StatusHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Registro de cambios de estado
// @Description  Cambios de estado de todos los clientes, del más reciente al más antiguo.
// @Tags         statuses
// @Produce      json
// @Security     BearerAuth
// @Param        status_id  query  string  false  "ID del estado"
// @Param        from       query  string  false  "Desde (YYYY-MM-DD, inclusivo)"
// @Param        to         query  string  false  "Hasta (YYYY-MM-DD, inclusivo)"
// @Param        limit      query  int     false  "Máximo por página (1-100)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StatusChangeListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customer-statuses [get]
func (h *StatusHandler) Search(c *fiber.Ctx) error {
	in := dto.StatusChangeListRequest{
		StatusID: c.Query("status_id"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
	in.Limit = c.QueryInt("limit", 20)
	in.Offset = c.QueryInt("offset", 0)
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Append godoc
// @Summary      Registrar cambio de estado
// @Tags         statuses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del cliente"
// @Param        body  body  dto.CustomerStatusRequest  true  "status_id, reason"
// @Success      201   {object}  dto.CustomerStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statuses [post]
func (h *StatusHandler) Append(c *fiber.Ctx) error {
	var in dto.CustomerStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Append(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Modify godoc
// @Summary      Modificar estado (no permitido)
// @Description  El historial es inmutable: responde 422 STATUS_IMMUTABLE si la entrada existe.
// @Tags         statuses
// @Security     BearerAuth
// @Param        id        path  string  true  "ID del cliente"
// @Param        statusId  path  string  true  "ID de la entrada"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statuses/{statusId} [put]
func (h *StatusHandler) Modify(c *fiber.Ctx) error {
	var in dto.CustomerStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return writeError(c, h.uc.Modify(c.UserContext(), c.Params("id"), c.Params("statusId"), in))
}

// Delete DELETE /api/customers/:id/statuses/:statusId siempre responde 405.
func (h *StatusHandler) Delete(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "GET, POST")
	return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: "el historial de estados no admite borrados"})
}
