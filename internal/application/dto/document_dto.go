package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// CreateDocumentRequest alta de un documento en borrador.
type CreateDocumentRequest struct {
	Type   string                `json:"type" validate:"required"`
	Causal string                `json:"causal"`
	Lines  []entity.DocumentLine `json:"lines"`
}

// MovementRequest movimiento propuesto dentro de una confirmación.
// Quantity lleva signo: positivo entrada, negativo salida. Si Expiry viene
// vacío se hereda del lote referenciado.
type MovementRequest struct {
	ItemID      string          `json:"item_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	LotID       *string         `json:"lot_id,omitempty"`
	SerialID    *string         `json:"serial_id,omitempty"`
	Expiry      *time.Time      `json:"expiry,omitempty"`
}

// ConfirmDocumentRequest cuerpo del endpoint de confirmación.
type ConfirmDocumentRequest struct {
	Movements []MovementRequest `json:"movements" validate:"required,min=1"`
}

// DocumentResponse documento serializado para respuestas.
type DocumentResponse struct {
	ID        string                `json:"id"`
	Type      string                `json:"type"`
	Status    string                `json:"status"`
	Causal    string                `json:"causal,omitempty"`
	Lines     []entity.DocumentLine `json:"lines,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	CreatedBy string                `json:"created_by,omitempty"`
}

// ToDocumentResponse mapea la entidad a respuesta.
func ToDocumentResponse(d *entity.Document) *DocumentResponse {
	if d == nil {
		return nil
	}
	return &DocumentResponse{
		ID:        d.ID,
		Type:      d.Type,
		Status:    d.Status,
		Causal:    d.Causal,
		Lines:     d.Lines,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// MovementResponse fila del ledger serializada.
type MovementResponse struct {
	ID          string          `json:"id"`
	DocumentID  *string         `json:"document_id,omitempty"`
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	LotID       *string         `json:"lot_id,omitempty"`
	SerialID    *string         `json:"serial_id,omitempty"`
	Expiry      *time.Time      `json:"expiry,omitempty"`
	MovedAt     time.Time       `json:"moved_at"`
}

// ToMovementResponse mapea la entidad a respuesta.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		DocumentID:  m.DocumentID,
		ItemID:      m.ItemID,
		WarehouseID: m.WarehouseID,
		Quantity:    m.Quantity,
		LotID:       m.LotID,
		SerialID:    m.SerialID,
		Expiry:      m.Expiry,
		MovedAt:     m.MovedAt,
	}
}
