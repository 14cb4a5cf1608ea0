package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// RegisterLotRequest alta de un lote.
type RegisterLotRequest struct {
	ItemID string     `json:"item_id" validate:"required"`
	Code   string     `json:"code" validate:"required"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

// RegisterSerialRequest alta de un serial.
type RegisterSerialRequest struct {
	ItemID string     `json:"item_id" validate:"required"`
	Code   string     `json:"code" validate:"required"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

// LotResponse lote serializado para respuestas.
type LotResponse struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"item_id"`
	Code      string     `json:"code"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToLotResponse mapea la entidad a respuesta.
func ToLotResponse(l *entity.Lot) *LotResponse {
	if l == nil {
		return nil
	}
	return &LotResponse{
		ID:        l.ID,
		ItemID:    l.ItemID,
		Code:      l.Code,
		Expiry:    l.Expiry,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
	}
}

// SerialResponse serial serializado para respuestas.
type SerialResponse struct {
	ID        string     `json:"id"`
	ItemID    string     `json:"item_id"`
	Code      string     `json:"code"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToSerialResponse mapea la entidad a respuesta.
func ToSerialResponse(s *entity.Serial) *SerialResponse {
	if s == nil {
		return nil
	}
	return &SerialResponse{
		ID:        s.ID,
		ItemID:    s.ItemID,
		Code:      s.Code,
		Expiry:    s.Expiry,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
