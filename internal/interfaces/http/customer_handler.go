package http

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CustomerHandler maneja clientes, su foto y sus reportes.
type CustomerHandler struct {
	uc      *usecase.CustomerUseCase
	reports *usecase.ReportUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, reports *usecase.ReportUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CustomerRequest  true  "datos del cliente"
// @Success      201   {object}  dto.CustomerDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        q            query  string  false  "búsqueda por código, nombre, CURP o email"
// @Param        gender       query  string  false  "M, F u O"
// @Param        has_illness  query  bool    false  "filtro de enfermedad"
// @Param        has_allergy  query  bool    false  "filtro de alergia"
// @Param        limit        query  int     false  "máximo 100"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	filter, err := parseCustomerFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de cliente
// @Description  Incluye contactos, historial de estados y estado actual.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return notFoundOr(c, out != nil, out)
}

// Update PUT /api/customers/:id (reemplazo completo)
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Description  Borra historial, contactos y suscripciones en una transacción y después la foto.
// @Tags         customers
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPhoto godoc
// @Summary      Subir foto de cliente
// @Description  multipart/form-data con el campo "photo" (jpeg, png o webp). Devuelve la ruta para usar en el alta.
// @Tags         customers
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        photo  formData  file  true  "imagen"
// @Success      201    {object}  dto.PhotoUploadResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/customers/photos [post]
func (h *CustomerHandler) UploadPhoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el campo photo es requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	// El tipo declarado por el cliente no es confiable: se detecta por contenido.
	br := bufio.NewReaderSize(f, 512)
	head, _ := br.Peek(512)
	contentType := http.DetectContentType(head)

	out, err := h.uc.UploadPhoto(c.UserContext(), contentType, fh.Size, br)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Photo GET /api/customers/:id/photo
func (h *CustomerHandler) Photo(c *fiber.Ctx) error {
	detail, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if detail == nil || detail.Photo == "" {
		return writeError(c, domain.ErrNotFound)
	}
	rc, err := h.uc.OpenPhoto(c.UserContext(), detail.Photo)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: foto no disponible", domain.ErrNotFound))
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return writeError(c, err)
	}
	c.Type(strings.TrimPrefix(path.Ext(detail.Photo), "."))
	return c.Send(data)
}

// Sheet godoc
// @Summary      Ficha PDF del cliente
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/sheet.pdf [get]
func (h *CustomerHandler) Sheet(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.reports.CustomerSheet(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=\"cliente-%s.pdf\"", id))
	return c.Send(pdf)
}

// Export godoc
// @Summary      Exportar clientes a Excel
// @Description  Acepta los mismos filtros que el listado; ignora la paginación.
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        q       query  string  false  "búsqueda"
// @Param        gender  query  string  false  "M, F u O"
// @Success      200  {file}  binary
// @Router       /api/customers/export.xlsx [get]
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	filter, err := parseCustomerFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.reports.ExportCustomers(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=\"clientes.xlsx\"")
	return c.Send(data)
}

func parseCustomerFilter(c *fiber.Ctx) (dto.CustomerListRequest, error) {
	f := dto.CustomerListRequest{
		Query:  strings.TrimSpace(c.Query("q")),
		Gender: strings.ToUpper(strings.TrimSpace(c.Query("gender"))),
	}
	f.Limit = c.QueryInt("limit", 20)
	f.Offset = c.QueryInt("offset", 0)
	var err error
	if f.HasIllness, err = queryBool(c, "has_illness"); err != nil {
		return f, err
	}
	if f.HasAllergy, err = queryBool(c, "has_allergy"); err != nil {
		return f, err
	}
	return f, nil
}

func queryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser true o false", domain.ErrInvalidInput, key)
	}
	return &v, nil
}
