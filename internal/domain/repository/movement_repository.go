package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/warehouse-pro/internal/domain/batch"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// MovementFilter filtros para existencias: lote y serial son opcionales
// (nil = cualquier lote/serial).
type MovementFilter struct {
	ItemID      string
	WarehouseID string
	LotID       *string
	SerialID    *string
}

// LotBalance remanente de un lote en una bodega.
type LotBalance struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
}

// MovementRepository puerto del ledger de stock. El ledger es append-only:
// no hay Update ni Delete; la existencia se deriva siempre de la suma de
// movimientos.
type MovementRepository interface {
	// Append agrega una fila inmutable al ledger.
	Append(ctx context.Context, m *entity.Movement) error

	// QuantityOnHand suma con signo los movimientos que casan con el filtro.
	QuantityOnHand(ctx context.Context, f MovementFilter) (decimal.Decimal, error)

	// BatchCandidates agrupa los movimientos de un artículo+bodega por
	// (lote, serial, vencimiento) y devuelve los grupos con remanente
	// positivo y su primer movimiento (insumo del selector FEFO/FIFO).
	BatchCandidates(ctx context.Context, itemID, warehouseID string) ([]batch.Candidate, error)

	// LotBalances devuelve el remanente por bodega de un lote (solo bodegas
	// con remanente distinto de cero). Insumo de la baja de lote, que debe
	// llevar cada remanente a cero antes de marcar el lote como disposed.
	LotBalances(ctx context.Context, lotID string) ([]LotBalance, error)

	// ListByDocument lista los movimientos escritos por un documento.
	ListByDocument(ctx context.Context, documentID string) ([]*entity.Movement, error)

	// ListByItem lista movimientos de un artículo en un rango de fechas.
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
