package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/application/inventory"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

// StockHandler consultas derivadas del ledger (protegido).
type StockHandler struct {
	stock *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase) *StockHandler {
	return &StockHandler{stock: stock}
}

// OnHand godoc
// @Summary      Existencia de un artículo en una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  true   "ID del artículo"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        lot_id        query  string  false  "Acotar a un lote"
// @Param        serial_id     query  string  false  "Acotar a un serial"
// @Success      200  {object}  dto.OnHandResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/on-hand [get]
func (h *StockHandler) OnHand(c *fiber.Ctx) error {
	f := repository.MovementFilter{
		ItemID:      c.Query("item_id"),
		WarehouseID: c.Query("warehouse_id"),
	}
	if v := c.Query("lot_id"); v != "" {
		f.LotID = &v
	}
	if v := c.Query("serial_id"); v != "" {
		f.SerialID = &v
	}
	out, err := h.stock.OnHand(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// NextBatch godoc
// @Summary      Próximo lote/serial a consumir (FEFO o FIFO)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id       query  string  true   "ID del artículo"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        policy        query  string  false  "FEFO o FIFO (defecto: configurado)"
// @Success      200  {object}  dto.NextBatchResponse
// @Success      204  "Sin candidato con remanente positivo"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/next-batch [get]
func (h *StockHandler) NextBatch(c *fiber.Ctx) error {
	out, err := h.stock.NextBatch(c.UserContext(), c.Query("item_id"), c.Query("warehouse_id"), c.Query("policy"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(out)
}

// ItemMovements godoc
// @Summary      Historial de movimientos de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/items/{id}/movements [get]
func (h *StockHandler) ItemMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	out, err := h.stock.ItemMovements(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
