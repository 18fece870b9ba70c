package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
)

// ContactHandler contactos de un cliente (/api/customers/:id/contacts).
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

// NewContactHandler construye el handler.
func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// List GET /api/customers/:id/contacts
func (h *ContactHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar contacto
// @Description  Siempre debe existir exactamente un contacto principal y uno de emergencia; el primero lleva ambas marcas.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del cliente"
// @Param        body  body  dto.ContactRequest  true  "contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/contacts [post]
func (h *ContactHandler) Add(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/customers/:id/contacts/:contactId
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), c.Params("contactId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/customers/:id/contacts/:contactId
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), c.Params("contactId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Designate godoc
// @Summary      Designar contacto principal o de emergencia
// @Description  Traslada la marca al contacto indicado y la quita del titular anterior.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path  string                       true  "ID del cliente"
// @Param        contactId  path  string                       true  "ID del contacto"
// @Param        body       body  dto.DesignateContactRequest  true  "marcas a trasladar"
// @Success      200  {array}   dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/contacts/{contactId}/designate [put]
func (h *ContactHandler) Designate(c *fiber.Ctx) error {
	var in dto.DesignateContactRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Designate(c.UserContext(), c.Params("id"), c.Params("contactId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
