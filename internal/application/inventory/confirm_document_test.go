package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	appinv "github.com/tu-usuario/warehouse-pro/internal/application/inventory"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID   = "empresa-1"
	testUserID      = "usuario-1"
	testItemID      = "articulo-1"
	testWarehouseID = "bodega-1"
)

func boundCtx() context.Context {
	return companyctx.With(context.Background(), testCompanyID)
}

// seedCatalog crea un artículo simple y una bodega.
func seedCatalog(s *memStore, lotTracked, serialTracked bool) {
	s.items[testItemID] = &entity.Item{
		ID:            testItemID,
		CompanyID:     testCompanyID,
		SKU:           "SKU-1",
		Name:          "Artículo de prueba",
		LotTracked:    lotTracked,
		SerialTracked: serialTracked,
	}
	s.warehouses[testWarehouseID] = &entity.Warehouse{
		ID:        testWarehouseID,
		CompanyID: testCompanyID,
		Name:      "Bodega central",
	}
}

// seedDraft crea un documento en borrador y devuelve su id.
func seedDraft(s *memStore, id string) string {
	s.documents[id] = &entity.Document{
		ID:        id,
		CompanyID: testCompanyID,
		Type:      "salida",
		Status:    entity.DocumentStatusDraft,
		CreatedAt: time.Now(),
	}
	return id
}

// seedStock escribe un movimiento de entrada directo al store.
func seedStock(s *memStore, qty string, lotID *string, movedAt time.Time) {
	var expiry *time.Time
	if lotID != nil {
		if l, ok := s.lots[*lotID]; ok {
			expiry = l.Expiry
		}
	}
	s.movements = append(s.movements, &entity.Movement{
		ID:          "mov-" + qty,
		CompanyID:   testCompanyID,
		ItemID:      testItemID,
		WarehouseID: testWarehouseID,
		Quantity:    decimal.RequireFromString(qty),
		LotID:       lotID,
		Expiry:      expiry,
		MovedAt:     movedAt,
	})
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación de documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_EntradaSimple(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	resp, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("10")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusConfirmed, resp.Status)
	assert.Equal(t, entity.DocumentStatusConfirmed, store.documents[docID].Status)
	require.Len(t, store.movements, 1)
	assert.Equal(t, docID, *store.movements[0].DocumentID)
}

func TestConfirm_DocumentoInexistente(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	_, err := uc.Confirm(boundCtx(), "no-existe", testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("1")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_DocumentoYaConfirmado(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	docID := seedDraft(store, "doc-1")
	store.documents[docID].Status = entity.DocumentStatusConfirmed
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("1")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestConfirm_SinContextoDeEmpresa(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	// Contexto sin empresa ligada: error de programación, nunca se recupera
	// con una empresa por defecto.
	_, err := uc.Confirm(context.Background(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("1")},
	})
	assert.ErrorIs(t, err, companyctx.ErrNotBound)
	assert.Empty(t, store.movements, "nada debe escribirse sin empresa ligada")
}

func TestConfirm_StockInsuficiente(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "5", nil, time.Now())
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	// Retirar 6 con existencia 5: rechazo total
	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("-6")},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, entity.DocumentStatusDraft, store.documents[docID].Status)
	assert.Len(t, store.movements, 1, "no debe escribirse ningún movimiento nuevo")
}

func TestConfirm_RetiroExactoDejaCero(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "5", nil, time.Now())
	docID := seedDraft(store, "doc-1")
	runner := &memRunner{store: store}
	uc := appinv.NewConfirmDocumentUseCase(runner)

	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("-5")},
	})
	require.NoError(t, err)

	onHand, err := runner.repoSet().Movements.QuantityOnHand(boundCtx(), movFilter(nil))
	require.NoError(t, err)
	assert.True(t, onHand.IsZero(), "la existencia debe quedar exactamente en cero")
}

func TestConfirm_RetirosDelMismoBatchSeAcumulan(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	seedStock(store, "5", nil, time.Now())
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	// Dos retiros de 3 sobre existencia 5: el segundo debe ver el efecto del
	// primero dentro del mismo batch y rechazar todo.
	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("-3")},
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("-3")},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, store.movements, 1)
}

func TestConfirm_ArticuloConLoteExigeLote(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, true, false)
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("10")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_LoteValidoPasaYHeredaVencimiento(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, true, false)
	expiry := time.Now().Add(72 * time.Hour)
	store.lots["lote-1"] = &entity.Lot{
		ID: "lote-1", CompanyID: testCompanyID, ItemID: testItemID,
		Code: "L-001", Expiry: &expiry, Status: entity.LotStatusActive,
	}
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	lotID := "lote-1"
	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("10"), LotID: &lotID},
	})
	require.NoError(t, err)
	require.Len(t, store.movements, 1)
	require.NotNil(t, store.movements[0].Expiry)
	assert.True(t, store.movements[0].Expiry.Equal(expiry), "el vencimiento se hereda del lote")
}

func TestConfirm_LoteVencidoOBloqueadoRechaza(t *testing.T) {
	pasado := time.Now().Add(-24 * time.Hour)
	cases := []struct {
		name string
		lot  entity.Lot
	}{
		{"vencido", entity.Lot{Status: entity.LotStatusActive, Expiry: &pasado}},
		{"bloqueado", entity.Lot{Status: entity.LotStatusBlocked}},
		{"dado de baja", entity.Lot{Status: entity.LotStatusDisposed}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			seedCatalog(store, true, false)
			lot := tc.lot
			lot.ID, lot.CompanyID, lot.ItemID, lot.Code = "lote-1", testCompanyID, testItemID, "L-001"
			store.lots["lote-1"] = &lot
			docID := seedDraft(store, "doc-1")
			uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

			lotID := "lote-1"
			_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
				{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("1"), LotID: &lotID},
			})
			assert.ErrorIs(t, err, domain.ErrLotUnavailable)
		})
	}
}

func TestConfirm_ArticuloConSerialExigeSerial(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, true)
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfirm_InventarioCongeladoBloquea(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	store.inventories["inv-1"] = &entity.Inventory{
		ID: "inv-1", CompanyID: testCompanyID, Status: entity.InventoryStatusFrozen,
	}
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	_, err := uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("10")},
	})
	assert.ErrorIs(t, err, domain.ErrInventoryFrozen)

	// Cerrado el ciclo, la confirmación vuelve a pasar
	store.inventories["inv-1"].Status = entity.InventoryStatusClosed
	_, err = uc.Confirm(boundCtx(), docID, testUserID, []dto.MovementRequest{
		{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: qty("10")},
	})
	assert.NoError(t, err)
}

func TestConfirm_EntradaInvalida(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, false, false)
	docID := seedDraft(store, "doc-1")
	uc := appinv.NewConfirmDocumentUseCase(&memRunner{store: store})

	cases := []struct {
		name string
		movs []dto.MovementRequest
	}{
		{"sin movimientos", nil},
		{"cantidad cero", []dto.MovementRequest{{ItemID: testItemID, WarehouseID: testWarehouseID, Quantity: decimal.Zero}}},
		{"sin articulo", []dto.MovementRequest{{WarehouseID: testWarehouseID, Quantity: qty("1")}}},
		{"sin bodega", []dto.MovementRequest{{ItemID: testItemID, Quantity: qty("1")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Confirm(boundCtx(), docID, testUserID, tc.movs)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func movFilter(lotID *string) (f repository.MovementFilter) {
	f.ItemID = testItemID
	f.WarehouseID = testWarehouseID
	f.LotID = lotID
	return f
}
