package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
)

// PricingHandler listas de precios, resolución de precio y vista previa de totales.
type PricingHandler struct {
	uc *pricing.UseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *pricing.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// ListPriceLists godoc
// @Summary      Listar listas de precios
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PriceListResponse
// @Router       /api/price-lists [get]
func (h *PricingHandler) ListPriceLists(c *fiber.Ctx) error {
	out, err := h.uc.ListPriceLists(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePriceList godoc
// @Summary      Crear lista de precios (solo admin)
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceListRequest  true  "code, name, multiplier"
// @Success      201   {object}  dto.PriceListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/price-lists [post]
func (h *PricingHandler) CreatePriceList(c *fiber.Ctx) error {
	var in dto.CreatePriceListRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreatePriceList(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve godoc
// @Summary      Precio de un producto en una lista
// @Description  Si la lista no existe se usa REGULAR y, sin listas, el precio base.
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResolvePriceRequest  true  "productId, priceList o customerId"
// @Success      200   {object}  dto.ResolvedPriceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricing/resolve [post]
func (h *PricingHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolvePriceRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ResolvePrice(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Calculate godoc
// @Summary      Vista previa de totales (no persiste)
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateRequest  true  "líneas y ajustes"
// @Success      200   {object}  dto.CalculateResponse
// @Router       /api/pricing/calculate [post]
func (h *PricingHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.uc.Calculate(in))
}
