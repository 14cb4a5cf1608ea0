package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// ScopeLineRequest línea de alcance de un conteo físico. Expected se
// snapshot-ea del ledger al crear, no viene del cliente.
type ScopeLineRequest struct {
	ItemID      string  `json:"item_id" validate:"required"`
	WarehouseID string  `json:"warehouse_id" validate:"required"`
	LotID       *string `json:"lot_id,omitempty"`
}

// CreateInventoryRequest alta de un ciclo de inventario físico.
type CreateInventoryRequest struct {
	Scope []ScopeLineRequest `json:"scope" validate:"required,min=1"`
}

// CountLineRequest cantidad contada para una línea del alcance.
type CountLineRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	LotID       *string         `json:"lot_id,omitempty"`
	Counted     decimal.Decimal `json:"counted"`
}

// RecordCountsRequest cuerpo del endpoint de registro de conteos.
type RecordCountsRequest struct {
	Counts []CountLineRequest `json:"counts" validate:"required,min=1"`
}

// InventoryResponse ciclo serializado para respuestas.
type InventoryResponse struct {
	ID          string                  `json:"id"`
	Status      string                  `json:"status"`
	Scope       []entity.ScopeLine      `json:"scope,omitempty"`
	Counts      []entity.CountLine      `json:"counts,omitempty"`
	Differences []entity.DifferenceLine `json:"differences,omitempty"`
	Delta       []entity.DeltaLine      `json:"delta,omitempty"`
	Approvals   []string                `json:"approvals,omitempty"`
	Audit       []entity.AuditEntry     `json:"audit,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	ClosedAt    *time.Time              `json:"closed_at,omitempty"`
}

// ToInventoryResponse mapea la entidad a respuesta.
func ToInventoryResponse(inv *entity.Inventory) *InventoryResponse {
	if inv == nil {
		return nil
	}
	return &InventoryResponse{
		ID:          inv.ID,
		Status:      inv.Status,
		Scope:       inv.Scope,
		Counts:      inv.Counts,
		Differences: inv.Differences,
		Delta:       inv.Delta,
		Approvals:   inv.Approvals,
		Audit:       inv.Audit,
		CreatedAt:   inv.CreatedAt,
		ClosedAt:    inv.ClosedAt,
	}
}

// CloseInventoryResponse resultado del cierre: delta autoritativo y reporte
// de variaciones codificado en base64 (listo para descarga).
type CloseInventoryResponse struct {
	Status string             `json:"status"`
	Delta  []entity.DeltaLine `json:"delta"`
	Report string             `json:"report"`
}
