package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del ciclo de inventario físico
// (protegido).
type InventoryHandler struct {
	lifecycle *inventory.LifecycleUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(lifecycle *inventory.LifecycleUseCase) *InventoryHandler {
	return &InventoryHandler{lifecycle: lifecycle}
}

// Create godoc
// @Summary      Abrir ciclo de inventario físico
// @Description  Snapshot-ea la existencia esperada de cada línea del alcance.
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "scope"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventories [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.lifecycle.Create(c.UserContext(), GetUserID(c), in.Scope)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// Freeze godoc
// @Summary      Congelar ciclo (bloquea confirmaciones de la empresa)
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/freeze [post]
func (h *InventoryHandler) Freeze(c *fiber.Ctx) error {
	inv, err := h.lifecycle.Freeze(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// RecordCounts godoc
// @Summary      Registrar conteos físicos
// @Tags         inventories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ciclo"
// @Param        body  body  dto.RecordCountsRequest true  "counts"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/counts [post]
func (h *InventoryHandler) RecordCounts(c *fiber.Ctx) error {
	var in dto.RecordCountsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.lifecycle.RecordCounts(c.UserContext(), c.Params("id"), GetUserID(c), in.Counts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Approve godoc
// @Summary      Aprobar ciclo
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/approve [post]
func (h *InventoryHandler) Approve(c *fiber.Ctx) error {
	inv, err := h.lifecycle.Approve(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// Close godoc
// @Summary      Cerrar ciclo
// @Description  Requiere al menos dos aprobaciones distintas. Escribe el
// delta como movimientos correctivos y devuelve el reporte de variaciones.
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.CloseInventoryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id}/close [post]
func (h *InventoryHandler) Close(c *fiber.Ctx) error {
	out, err := h.lifecycle.Close(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ciclo de inventario
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ciclo"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventories/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.lifecycle.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// List godoc
// @Summary      Listar ciclos de inventario
// @Tags         inventories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryResponse
// @Router       /api/inventories [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	list, err := h.lifecycle.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
