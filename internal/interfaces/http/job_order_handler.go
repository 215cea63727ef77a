package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/joborder"
)

// JobOrderHandler órdenes de producción y despachos.
type JobOrderHandler struct {
	uc *joborder.UseCase
}

// NewJobOrderHandler construye el handler.
func NewJobOrderHandler(uc *joborder.UseCase) *JobOrderHandler {
	return &JobOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Enviar orden de venta a producción
// @Tags         job-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobOrderRequest  true  "salesOrderId, dueDate"
// @Success      201   {object}  dto.JobOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/job-orders [post]
func (h *JobOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobOrderRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateFromSalesOrder(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener orden de producción con avance
// @Tags         job-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de producción"
// @Success      200  {object}  dto.JobOrderResponse
// @Router       /api/job-orders/{id} [get]
func (h *JobOrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de producción
// @Tags         job-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending, in_production, completed"
// @Success      200  {object}  dto.JobOrderListResponse
// @Router       /api/job-orders [get]
func (h *JobOrderHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentListQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordShipment godoc
// @Summary      Registrar despacho parcial o total
// @Description  La cantidad no puede superar el saldo de la línea.
// @Tags         job-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de producción"
// @Param        body  body  dto.RecordShipmentRequest  true  "itemId o productId, quantity"
// @Success      201   {object}  dto.JobOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/job-orders/{id}/shipments [post]
func (h *JobOrderHandler) RecordShipment(c *fiber.Ctx) error {
	var in dto.RecordShipmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordShipment(c.UserContext(), GetCompanyID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
