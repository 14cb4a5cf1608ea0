package entity

import "time"

// Estados de documento. Un documento nace en draft y transiciona una sola vez
// a confirmed (inmutable después) o a cancelled (solo desde draft).
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusConfirmed = "confirmed"
	DocumentStatusCancelled = "cancelled"
)

// Document cabecera lógica de una transacción de inventario (entrada, salida,
// transferencia, ajuste…). Las líneas son informativas; los movimientos
// reales se escriben en el ledger al confirmar.
type Document struct {
	ID        string
	CompanyID string
	Type      string
	Status    string
	Causal    string
	Lines     []DocumentLine
	CreatedAt time.Time
	CreatedBy string
}

// DocumentLine línea informativa del documento (referencias de captura).
type DocumentLine struct {
	Barcode string `json:"barcode,omitempty"`
	Lot     string `json:"lot,omitempty"`
	Serial  string `json:"serial,omitempty"`
	Notes   string `json:"notes,omitempty"`
}
