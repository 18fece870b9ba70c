package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

// CatalogHandler expone los tres catálogos: estados de cliente, suscripciones y medios de descubrimiento.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// notFoundOr responde 404 cuando el use case devuelve (nil, nil).
func notFoundOr(c *fiber.Ctx, found bool, v any) error {
	if !found {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(v)
}

// ListClientStatuses godoc
// @Summary      Listar estados de cliente
// @Tags         catalogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ClientStatusResponse
// @Router       /api/catalogs/client-statuses [get]
func (h *CatalogHandler) ListClientStatuses(c *fiber.Ctx) error {
	list, err := h.uc.ListClientStatuses(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetClientStatus GET /api/catalogs/client-statuses/:id
func (h *CatalogHandler) GetClientStatus(c *fiber.Ctx) error {
	out, err := h.uc.GetClientStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return notFoundOr(c, out != nil, out)
}

// CreateClientStatus godoc
// @Summary      Crear estado de cliente
// @Tags         catalogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ClientStatusRequest  true  "name"
// @Success      201   {object}  dto.ClientStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogs/client-statuses [post]
func (h *CatalogHandler) CreateClientStatus(c *fiber.Ctx) error {
	var in dto.ClientStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateClientStatus(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateClientStatus PUT /api/catalogs/client-statuses/:id
func (h *CatalogHandler) UpdateClientStatus(c *fiber.Ctx) error {
	var in dto.ClientStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateClientStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteClientStatus godoc
// @Summary      Eliminar estado de cliente
// @Description  Falla con CATALOG_IN_USE si algún historial lo referencia.
// @Tags         catalogs
// @Security     BearerAuth
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/catalogs/client-statuses/{id} [delete]
func (h *CatalogHandler) DeleteClientStatus(c *fiber.Ctx) error {
	if err := h.uc.DeleteClientStatus(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSubscriptions godoc
// @Summary      Listar suscripciones
// @Tags         catalogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SubscriptionResponse
// @Router       /api/catalogs/subscriptions [get]
func (h *CatalogHandler) ListSubscriptions(c *fiber.Ctx) error {
	list, err := h.uc.ListSubscriptions(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetSubscription GET /api/catalogs/subscriptions/:id
func (h *CatalogHandler) GetSubscription(c *fiber.Ctx) error {
	out, err := h.uc.GetSubscription(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return notFoundOr(c, out != nil, out)
}

// CreateSubscription godoc
// @Summary      Crear suscripción
// @Tags         catalogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SubscriptionRequest  true  "code, name, monthly_fee"
// @Success      201   {object}  dto.SubscriptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogs/subscriptions [post]
func (h *CatalogHandler) CreateSubscription(c *fiber.Ctx) error {
	var in dto.SubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSubscription(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSubscription PUT /api/catalogs/subscriptions/:id
func (h *CatalogHandler) UpdateSubscription(c *fiber.Ctx) error {
	var in dto.SubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSubscription(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSubscription DELETE /api/catalogs/subscriptions/:id
func (h *CatalogHandler) DeleteSubscription(c *fiber.Ctx) error {
	if err := h.uc.DeleteSubscription(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDiscoverySources godoc
// @Summary      Listar medios de descubrimiento
// @Tags         catalogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.DiscoverySourceResponse
// @Router       /api/catalogs/discovery-sources [get]
func (h *CatalogHandler) ListDiscoverySources(c *fiber.Ctx) error {
	list, err := h.uc.ListDiscoverySources(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetDiscoverySource GET /api/catalogs/discovery-sources/:id
func (h *CatalogHandler) GetDiscoverySource(c *fiber.Ctx) error {
	out, err := h.uc.GetDiscoverySource(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return notFoundOr(c, out != nil, out)
}

// CreateDiscoverySource POST /api/catalogs/discovery-sources
func (h *CatalogHandler) CreateDiscoverySource(c *fiber.Ctx) error {
	var in dto.DiscoverySourceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateDiscoverySource(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDiscoverySource PUT /api/catalogs/discovery-sources/:id
func (h *CatalogHandler) UpdateDiscoverySource(c *fiber.Ctx) error {
	var in dto.DiscoverySourceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateDiscoverySource(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteDiscoverySource DELETE /api/catalogs/discovery-sources/:id
func (h *CatalogHandler) DeleteDiscoverySource(c *fiber.Ctx) error {
	if err := h.uc.DeleteDiscoverySource(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
