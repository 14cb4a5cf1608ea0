package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/application/inventory"
)

// LotHandler maneja las peticiones HTTP de lotes y seriales (protegido).
type LotHandler struct {
	lots *inventory.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(lots *inventory.LotUseCase) *LotHandler {
	return &LotHandler{lots: lots}
}

// RegisterLot godoc
// @Summary      Registrar lote
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterLotRequest  true  "item_id, code, expiry"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) RegisterLot(c *fiber.Ctx) error {
	var in dto.RegisterLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.lots.RegisterLot(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// RegisterSerial godoc
// @Summary      Registrar serial
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSerialRequest  true  "item_id, code, expiry"
// @Success      201   {object}  dto.SerialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/serials [post]
func (h *LotHandler) RegisterSerial(c *fiber.Ctx) error {
	var in dto.RegisterSerialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, err := h.lots.RegisterSerial(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// Block godoc
// @Summary      Bloquear lote
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/block [post]
func (h *LotHandler) Block(c *fiber.Ctx) error {
	lot, err := h.lots.Block(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// Unblock godoc
// @Summary      Desbloquear lote
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/unblock [post]
func (h *LotHandler) Unblock(c *fiber.Ctx) error {
	lot, err := h.lots.Unblock(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// Dispose godoc
// @Summary      Dar de baja un lote vencido
// @Description  Escribe movimientos correctivos hasta dejar el remanente en
// cero y marca el lote como disposed. Solo lotes vencidos.
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/dispose [post]
func (h *LotHandler) Dispose(c *fiber.Ctx) error {
	lot, err := h.lots.Dispose(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// List godoc
// @Summary      Listar lotes
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	lots, err := h.lots.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lots)
}

// ListExpiring godoc
// @Summary      Lotes por vencer
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (defecto 30)"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots/expiring [get]
func (h *LotHandler) ListExpiring(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days <= 0 {
		days = 30
	}
	lots, err := h.lots.ListExpiring(c.UserContext(), time.Duration(days)*24*time.Hour)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lots)
}
