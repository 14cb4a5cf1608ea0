package entity

import "time"

// Estados de lote/serial. active<->blocked es reversible;
// disposed es terminal y solo se alcanza con cantidad remanente cero.
const (
	LotStatusActive   = "active"
	LotStatusBlocked  = "blocked"
	LotStatusDisposed = "disposed"
)

// Lot lote de un artículo, con vencimiento opcional.
type Lot struct {
	ID        string
	CompanyID string
	ItemID    string
	Code      string
	Expiry    *time.Time
	Status    string
	CreatedAt time.Time
}

// Expired informa si el lote tiene vencimiento y ya pasó.
func (l *Lot) Expired(now time.Time) bool {
	return l.Expiry != nil && l.Expiry.Before(now)
}

// Available informa si el lote admite nuevos movimientos de salida:
// activo y no vencido.
func (l *Lot) Available(now time.Time) bool {
	return l.Status == LotStatusActive && !l.Expired(now)
}

// Serial número de serie de un artículo (cantidad 0 o 1 por serial).
type Serial struct {
	ID        string
	CompanyID string
	ItemID    string
	Code      string
	Expiry    *time.Time
	Status    string
	CreatedAt time.Time
}
