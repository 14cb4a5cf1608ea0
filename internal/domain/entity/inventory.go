package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/warehouse-pro/internal/domain"
)

// Estados del ciclo de inventario físico.
// open --freeze--> frozen --close--> closed; ninguna transición salta estados.
const (
	InventoryStatusOpen   = "open"
	InventoryStatusFrozen = "frozen"
	InventoryStatusClosed = "closed"
)

// Acciones registradas en la pista de auditoría.
const (
	InventoryActionCreate  = "create"
	InventoryActionFreeze  = "freeze"
	InventoryActionCount   = "count"
	InventoryActionApprove = "approve"
	InventoryActionClose   = "close"
)

// ApprovalQuorum número mínimo de aprobadores distintos para cerrar.
const ApprovalQuorum = 2

// ScopeLine cantidad esperada (snapshot al crear) para una combinación
// artículo/bodega/lote dentro del alcance del conteo.
type ScopeLine struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	LotID       *string         `json:"lot_id,omitempty"`
	Expected    decimal.Decimal `json:"expected"`
}

// CountLine cantidad contada físicamente para una línea del alcance.
type CountLine struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	LotID       *string         `json:"lot_id,omitempty"`
	Counted     decimal.Decimal `json:"counted"`
}

// DifferenceLine contado − esperado por línea del alcance.
type DifferenceLine struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	LotID       *string         `json:"lot_id,omitempty"`
	Expected    decimal.Decimal `json:"expected"`
	Counted     decimal.Decimal `json:"counted"`
	Difference  decimal.Decimal `json:"difference"`
}

// DeltaLine movimiento correctivo pendiente: al cerrar, cada línea se escribe
// al ledger con su cantidad con signo.
type DeltaLine struct {
	ItemID      string          `json:"item_id"`
	WarehouseID string          `json:"warehouse_id"`
	LotID       *string         `json:"lot_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AuditEntry entrada ordenada de la pista de auditoría.
type AuditEntry struct {
	Action string    `json:"action"`
	Actor  string    `json:"actor"`
	At     time.Time `json:"at"`
}

// Inventory ciclo de conteo físico de una empresa.
//
// La máquina de estados vive en la entidad: cada transición valida el estado
// actual y retorna un error de dominio si es ilegal, de modo que la capa de
// aplicación solo orquesta persistencia. Go no tiene sum types, así que los
// estados ilegales se rechazan en los métodos en lugar de ser
// irrepresentables.
type Inventory struct {
	ID          string
	CompanyID   string
	Status      string
	Scope       []ScopeLine
	Counts      []CountLine
	Differences []DifferenceLine
	Delta       []DeltaLine
	Approvals   []string
	Audit       []AuditEntry
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// NewInventory crea un ciclo en estado open con el alcance ya snapshot-eado.
func NewInventory(id, companyID, actor string, scope []ScopeLine, now time.Time) *Inventory {
	inv := &Inventory{
		ID:        id,
		CompanyID: companyID,
		Status:    InventoryStatusOpen,
		Scope:     scope,
		CreatedAt: now,
	}
	inv.appendAudit(InventoryActionCreate, actor, now)
	return inv
}

// Freeze congela el ciclo. Solo válido desde open: repetir la llamada sobre
// un ciclo ya congelado o cerrado es un conflicto, no una operación idempotente.
func (inv *Inventory) Freeze(actor string, now time.Time) error {
	if inv.Status != InventoryStatusOpen {
		return domain.ErrConflict
	}
	inv.Status = InventoryStatusFrozen
	inv.appendAudit(InventoryActionFreeze, actor, now)
	return nil
}

// RecordCounts registra cantidades contadas y recalcula differences y delta.
// Válido en cualquier estado no cerrado; no cambia el estado.
func (inv *Inventory) RecordCounts(actor string, counts []CountLine, now time.Time) error {
	if inv.Status == InventoryStatusClosed {
		return domain.ErrConflict
	}
	inv.Counts = counts
	inv.Differences = inv.Differences[:0]
	inv.Delta = inv.Delta[:0]

	counted := make(map[scopeKey]decimal.Decimal, len(counts))
	for _, c := range counts {
		k := newScopeKey(c.ItemID, c.WarehouseID, c.LotID)
		counted[k] = counted[k].Add(c.Counted)
	}
	for _, s := range inv.Scope {
		k := newScopeKey(s.ItemID, s.WarehouseID, s.LotID)
		got := counted[k] // línea no contada => contado cero
		diff := got.Sub(s.Expected)
		inv.Differences = append(inv.Differences, DifferenceLine{
			ItemID:      s.ItemID,
			WarehouseID: s.WarehouseID,
			LotID:       s.LotID,
			Expected:    s.Expected,
			Counted:     got,
			Difference:  diff,
		})
		if !diff.IsZero() {
			inv.Delta = append(inv.Delta, DeltaLine{
				ItemID:      s.ItemID,
				WarehouseID: s.WarehouseID,
				LotID:       s.LotID,
				Quantity:    diff,
			})
		}
	}
	inv.appendAudit(InventoryActionCount, actor, now)
	return nil
}

// Approve suma una aprobación. Aprobar dos veces con el mismo actor es un
// conflicto explícito, no se ignora en silencio.
func (inv *Inventory) Approve(actor string, now time.Time) error {
	if inv.Status == InventoryStatusClosed {
		return domain.ErrConflict
	}
	for _, a := range inv.Approvals {
		if a == actor {
			return domain.ErrDuplicateApproval
		}
	}
	inv.Approvals = append(inv.Approvals, actor)
	inv.appendAudit(InventoryActionApprove, actor, now)
	return nil
}

// Close cierra el ciclo. Solo válido desde frozen y con al menos
// ApprovalQuorum aprobadores distintos; después de cerrar, el ciclo es
// inmutable y su delta pasa a ser autoritativo.
func (inv *Inventory) Close(actor string, now time.Time) error {
	if inv.Status == InventoryStatusClosed {
		return domain.ErrConflict
	}
	if inv.Status != InventoryStatusFrozen {
		return domain.ErrConflict
	}
	if len(inv.Approvals) < ApprovalQuorum {
		return domain.ErrApprovalQuorum
	}
	inv.Status = InventoryStatusClosed
	inv.ClosedAt = &now
	inv.appendAudit(InventoryActionClose, actor, now)
	return nil
}

func (inv *Inventory) appendAudit(action, actor string, at time.Time) {
	inv.Audit = append(inv.Audit, AuditEntry{Action: action, Actor: actor, At: at})
}

// scopeKey clave de agrupación artículo/bodega/lote.
type scopeKey struct {
	item      string
	warehouse string
	lot       string
}

func newScopeKey(itemID, warehouseID string, lotID *string) scopeKey {
	k := scopeKey{item: itemID, warehouse: warehouseID}
	if lotID != nil {
		k.lot = *lotID
	}
	return k
}
