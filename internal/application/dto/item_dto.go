package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// CreateItemRequest alta de un artículo.
type CreateItemRequest struct {
	SKU           string `json:"sku" validate:"required"`
	Name          string `json:"name" validate:"required"`
	LotTracked    bool   `json:"lot_tracked"`
	SerialTracked bool   `json:"serial_tracked"`
}

// ItemResponse artículo serializado para respuestas.
type ItemResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	LotTracked    bool      `json:"lot_tracked"`
	SerialTracked bool      `json:"serial_tracked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToItemResponse mapea la entidad a respuesta.
func ToItemResponse(i *entity.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:            i.ID,
		SKU:           i.SKU,
		Name:          i.Name,
		LotTracked:    i.LotTracked,
		SerialTracked: i.SerialTracked,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// CreateWarehouseRequest alta de una bodega.
type CreateWarehouseRequest struct {
	Name string `json:"name" validate:"required"`
}

// WarehouseResponse bodega serializada para respuestas.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse mapea la entidad a respuesta.
func ToWarehouseResponse(w *entity.Warehouse) *WarehouseResponse {
	if w == nil {
		return nil
	}
	return &WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// OnHandResponse existencia derivada del ledger para una combinación.
type OnHandResponse struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	LotID       *string         `json:"lot_id,omitempty"`
	SerialID    *string         `json:"serial_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// NextBatchResponse candidato elegido por el selector de lotes.
type NextBatchResponse struct {
	Policy        string          `json:"policy"`
	LotID         *string         `json:"lot_id,omitempty"`
	SerialID      *string         `json:"serial_id,omitempty"`
	Expiry        *time.Time      `json:"expiry,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	FirstMovement time.Time       `json:"first_movement"`
}
