package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement fila inmutable del ledger de stock. La existencia (on-hand) de un
// artículo en una bodega es siempre la suma de sus movimientos: el ledger es
// append-only y nunca se actualiza ni borra una fila.
//
// DocumentID es nil para movimientos correctivos (baja de lote, delta de
// inventario físico).
type Movement struct {
	ID          string
	CompanyID   string
	DocumentID  *string
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal // con signo: positivo entrada, negativo salida
	LotID       *string
	SerialID    *string
	Expiry      *time.Time
	MovedAt     time.Time
	CreatedBy   string
}
