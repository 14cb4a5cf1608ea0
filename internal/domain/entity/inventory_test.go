package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

var t0 = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestInventory() *entity.Inventory {
	scope := []entity.ScopeLine{
		{ItemID: "item-1", WarehouseID: "wh-1", Expected: decimal.NewFromInt(10)},
		{ItemID: "item-2", WarehouseID: "wh-1", Expected: decimal.NewFromInt(4)},
	}
	return entity.NewInventory("inv-1", "empresa-1", "creador", scope, t0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestNewInventory_NaceAbiertoConAuditoria(t *testing.T) {
	inv := newTestInventory()
	assert.Equal(t, entity.InventoryStatusOpen, inv.Status)
	require.Len(t, inv.Audit, 1)
	assert.Equal(t, entity.InventoryActionCreate, inv.Audit[0].Action)
	assert.Equal(t, "creador", inv.Audit[0].Actor)
	assert.Empty(t, inv.Approvals, "un ciclo abierto no tiene aprobaciones")
}

func TestFreeze_DesdeOpen_Congela(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("bodeguero", t0.Add(time.Hour)))
	assert.Equal(t, entity.InventoryStatusFrozen, inv.Status)
	assert.Equal(t, entity.InventoryActionFreeze, inv.Audit[len(inv.Audit)-1].Action)
}

// Congelar dos veces es un conflicto: la operación no es idempotente.
func TestFreeze_Repetido_EsConflicto(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("a", t0))
	err := inv.Freeze("a", t0)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClose_DesdeOpen_EsConflicto(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Approve("u1", t0))
	require.NoError(t, inv.Approve("u2", t0))
	// close solo es válido desde frozen, aunque haya quorum
	err := inv.Close("u1", t0)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteos, diferencias y delta
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordCounts_CalculaDiferenciasYDelta(t *testing.T) {
	inv := newTestInventory()
	counts := []entity.CountLine{
		{ItemID: "item-1", WarehouseID: "wh-1", Counted: decimal.NewFromInt(8)},  // faltan 2
		{ItemID: "item-2", WarehouseID: "wh-1", Counted: decimal.NewFromInt(4)}, // cuadra
	}
	require.NoError(t, inv.RecordCounts("contador", counts, t0.Add(time.Hour)))

	require.Len(t, inv.Differences, 2)
	assert.True(t, inv.Differences[0].Difference.Equal(decimal.NewFromInt(-2)))
	assert.True(t, inv.Differences[1].Difference.IsZero())

	// solo las diferencias no nulas generan movimientos correctivos
	require.Len(t, inv.Delta, 1)
	assert.Equal(t, "item-1", inv.Delta[0].ItemID)
	assert.True(t, inv.Delta[0].Quantity.Equal(decimal.NewFromInt(-2)))

	assert.Equal(t, entity.InventoryStatusOpen, inv.Status, "contar no cambia el estado")
}

// Una línea del alcance sin conteo se trata como contado cero.
func TestRecordCounts_LineaSinConteo_CuentaCero(t *testing.T) {
	inv := newTestInventory()
	counts := []entity.CountLine{
		{ItemID: "item-1", WarehouseID: "wh-1", Counted: decimal.NewFromInt(10)},
	}
	require.NoError(t, inv.RecordCounts("contador", counts, t0))

	require.Len(t, inv.Delta, 1)
	assert.Equal(t, "item-2", inv.Delta[0].ItemID)
	assert.True(t, inv.Delta[0].Quantity.Equal(decimal.NewFromInt(-4)))
}

// Contar sigue siendo válido con el ciclo congelado: el conteo físico ocurre
// precisamente durante el congelamiento.
func TestRecordCounts_EnFrozen_EsValido(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("a", t0))
	err := inv.RecordCounts("contador", nil, t0)
	require.NoError(t, err)
	require.Len(t, inv.Delta, 2, "sin conteos, todo el alcance es faltante")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobaciones y cierre (quorum de dos aprobadores distintos)
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_Duplicado_EsConflicto(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Approve("u1", t0))
	err := inv.Approve("u1", t0)
	assert.ErrorIs(t, err, domain.ErrDuplicateApproval)
	assert.Len(t, inv.Approvals, 1)
}

func TestClose_SinAprobaciones_FaltaQuorum(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("a", t0))
	err := inv.Close("a", t0)
	assert.ErrorIs(t, err, domain.ErrApprovalQuorum)
	assert.Equal(t, entity.InventoryStatusFrozen, inv.Status, "el estado no cambia si falla el cierre")
}

func TestClose_UnaAprobacion_FaltaQuorum(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("a", t0))
	require.NoError(t, inv.Approve("u1", t0))
	err := inv.Close("a", t0)
	assert.ErrorIs(t, err, domain.ErrApprovalQuorum)
}

func TestClose_ConQuorum_Cierra(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("a", t0))
	require.NoError(t, inv.Approve("u1", t0))
	require.NoError(t, inv.Approve("u2", t0))

	closeAt := t0.Add(2 * time.Hour)
	require.NoError(t, inv.Close("u1", closeAt))

	assert.Equal(t, entity.InventoryStatusClosed, inv.Status)
	require.NotNil(t, inv.ClosedAt)
	assert.True(t, inv.ClosedAt.Equal(closeAt))
	assert.Equal(t, entity.InventoryActionClose, inv.Audit[len(inv.Audit)-1].Action)
}

// Una vez cerrado, el ciclo es inmutable: toda operación es conflicto.
func TestClosed_EsInmutable(t *testing.T) {
	inv := newTestInventory()
	require.NoError(t, inv.Freeze("a", t0))
	require.NoError(t, inv.Approve("u1", t0))
	require.NoError(t, inv.Approve("u2", t0))
	require.NoError(t, inv.Close("u1", t0))

	assert.ErrorIs(t, inv.Close("u1", t0), domain.ErrConflict)
	assert.ErrorIs(t, inv.Freeze("a", t0), domain.ErrConflict)
	assert.ErrorIs(t, inv.Approve("u3", t0), domain.ErrConflict)
	assert.ErrorIs(t, inv.RecordCounts("c", nil, t0), domain.ErrConflict)
}
