package inventory_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	appinv "github.com/tu-usuario/warehouse-pro/internal/application/inventory"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de inventario físico: crear -> congelar -> contar -> aprobar -> cerrar
// ──────────────────────────────────────────────────────────────────────────────

func scopeRequest() []dto.ScopeLineRequest {
	return []dto.ScopeLineRequest{{ItemID: testItemID, WarehouseID: testWarehouseID}}
}

func TestLifecycle_CreateSnapshotDeExistencias(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "7", nil, time.Now())
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	resp, err := uc.Create(boundCtx(), testUserID, scopeRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryStatusOpen, resp.Status)
	require.Len(t, resp.Scope, 1)
	assert.Equal(t, "7", resp.Scope[0].Expected.String(), "expected se snapshot-ea al crear")
	require.Len(t, resp.Audit, 1)
	assert.Equal(t, entity.InventoryActionCreate, resp.Audit[0].Action)
}

func TestLifecycle_FreezeSoloDesdeOpen(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	created, err := uc.Create(boundCtx(), testUserID, scopeRequest())
	require.NoError(t, err)

	frozen, err := uc.Freeze(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryStatusFrozen, frozen.Status)

	// Congelar dos veces no es idempotente: conflicto
	_, err = uc.Freeze(boundCtx(), created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLifecycle_RecordCountsCalculaDiferencias(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "10", nil, time.Now())
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	created, err := uc.Create(boundCtx(), testUserID, scopeRequest())
	require.NoError(t, err)

	resp, err := uc.RecordCounts(boundCtx(), created.ID, testUserID, []dto.CountLineRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Counted: qty("8")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Differences, 1)
	assert.Equal(t, "-2", resp.Differences[0].Difference.String())
	require.Len(t, resp.Delta, 1)
	assert.Equal(t, "-2", resp.Delta[0].Quantity.String())
	// Contar no cambia el estado
	assert.Equal(t, entity.InventoryStatusOpen, resp.Status)
}

func TestLifecycle_CierreExigeQuorum(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	created, err := uc.Create(boundCtx(), testUserID, scopeRequest())
	require.NoError(t, err)
	_, err = uc.Freeze(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)

	// Sin aprobaciones
	_, err = uc.Close(boundCtx(), created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrApprovalQuorum)

	// Con una sola aprobación
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-1")
	require.NoError(t, err)
	_, err = uc.Close(boundCtx(), created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrApprovalQuorum)

	// El mismo aprobador no puede aprobar dos veces
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-1")
	assert.ErrorIs(t, err, domain.ErrDuplicateApproval)

	// Con dos aprobadores distintos el cierre pasa
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-2")
	require.NoError(t, err)
	closed, err := uc.Close(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryStatusClosed, closed.Status)

	// Cerrado es terminal
	_, err = uc.Close(boundCtx(), created.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLifecycle_CierreEscribeDeltaAlLedger(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "10", nil, time.Now())
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	created, err := uc.Create(boundCtx(), testUserID, scopeRequest())
	require.NoError(t, err)
	_, err = uc.RecordCounts(boundCtx(), created.ID, testUserID, []dto.CountLineRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Counted: qty("8")},
	})
	require.NoError(t, err)
	_, err = uc.Freeze(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-1")
	require.NoError(t, err)
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-2")
	require.NoError(t, err)

	closed, err := uc.Close(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)
	require.Len(t, closed.Delta, 1)

	// El movimiento correctivo quedó en el ledger, sin documento asociado
	require.Len(t, store.movements, 2)
	correctivo := store.movements[1]
	assert.Nil(t, correctivo.DocumentID)
	assert.Equal(t, "-2", correctivo.Quantity.String())

	// La existencia derivada ahora coincide con lo contado
	runner := &memRunner{store: store}
	onHand, err := runner.repoSet().Movements.QuantityOnHand(boundCtx(), movFilter(nil))
	require.NoError(t, err)
	assert.Equal(t, "8", onHand.String())
}

func TestLifecycle_ReporteDeVariaciones(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "10", nil, time.Now())
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	created, err := uc.Create(boundCtx(), testUserID, scopeRequest())
	require.NoError(t, err)
	_, err = uc.RecordCounts(boundCtx(), created.ID, testUserID, []dto.CountLineRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Counted: qty("8")},
	})
	require.NoError(t, err)
	_, err = uc.Freeze(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-1")
	require.NoError(t, err)
	_, err = uc.Approve(boundCtx(), created.ID, "aprobador-2")
	require.NoError(t, err)
	closed, err := uc.Close(boundCtx(), created.ID, testUserID)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(closed.Report)
	require.NoError(t, err, "el reporte viene codificado en base64")
	report := string(raw)
	assert.True(t, strings.HasPrefix(report, "item_id,warehouse_id,lot_id,expected,counted,difference\n"))
	assert.Contains(t, report, testItemID+","+testWarehouseID+",,10,8,-2")
}

func TestLifecycle_CicloInexistente(t *testing.T) {
	store := newMemStore()
	uc := appinv.NewLifecycleUseCase(&memRunner{store: store})

	_, err := uc.Freeze(boundCtx(), "no-existe", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Close(boundCtx(), "no-existe", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
