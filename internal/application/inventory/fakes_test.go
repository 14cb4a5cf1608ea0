package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/tu-usuario/warehouse-pro/internal/application/inventory"
	"github.com/tu-usuario/warehouse-pro/internal/domain/batch"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un memStore implementa los puertos de repositorio y un
// memRunner implementa SessionRunner exigiendo, como el runner real, que el
// contexto venga ligado a una empresa.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	movements   []*entity.Movement
	documents   map[string]*entity.Document
	items       map[string]*entity.Item
	warehouses  map[string]*entity.Warehouse
	lots        map[string]*entity.Lot
	serials     map[string]*entity.Serial
	inventories map[string]*entity.Inventory
}

func newMemStore() *memStore {
	return &memStore{
		documents:   make(map[string]*entity.Document),
		items:       make(map[string]*entity.Item),
		warehouses:  make(map[string]*entity.Warehouse),
		lots:        make(map[string]*entity.Lot),
		serials:     make(map[string]*entity.Serial),
		inventories: make(map[string]*entity.Inventory),
	}
}

// memRunner corre fn contra el store directamente. No simula transacciones:
// los tests de atomicidad verifican estado observable tras el error.
type memRunner struct {
	store *memStore
}

func (r *memRunner) repoSet() appinv.RepoSet {
	return appinv.RepoSet{
		Movements:   &memMovements{s: r.store},
		Documents:   &memDocuments{s: r.store},
		Items:       &memItems{s: r.store},
		Warehouses:  &memWarehouses{s: r.store},
		Lots:        &memLots{s: r.store},
		Serials:     &memSerials{s: r.store},
		Inventories: &memInventories{s: r.store},
	}
}

func (r *memRunner) Run(ctx context.Context, fn func(rs appinv.RepoSet) error) error {
	if _, err := companyctx.FromContext(ctx); err != nil {
		return err
	}
	return fn(r.repoSet())
}

func (r *memRunner) RunSerializable(ctx context.Context, fn func(rs appinv.RepoSet) error) error {
	return r.Run(ctx, fn)
}

// ─── movimientos ──────────────────────────────────────────────────────────────

type memMovements struct{ s *memStore }

func (m *memMovements) Append(_ context.Context, mv *entity.Movement) error {
	cp := *mv
	m.s.movements = append(m.s.movements, &cp)
	return nil
}

func matches(mv *entity.Movement, f repository.MovementFilter) bool {
	if mv.ItemID != f.ItemID || mv.WarehouseID != f.WarehouseID {
		return false
	}
	if f.LotID != nil && (mv.LotID == nil || *mv.LotID != *f.LotID) {
		return false
	}
	if f.SerialID != nil && (mv.SerialID == nil || *mv.SerialID != *f.SerialID) {
		return false
	}
	return true
}

func (m *memMovements) QuantityOnHand(_ context.Context, f repository.MovementFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, mv := range m.s.movements {
		if matches(mv, f) {
			sum = sum.Add(mv.Quantity)
		}
	}
	return sum, nil
}

func (m *memMovements) BatchCandidates(_ context.Context, itemID, warehouseID string) ([]batch.Candidate, error) {
	type groupKey struct{ lot, serial, expiry string }
	groups := make(map[groupKey]*batch.Candidate)
	for _, mv := range m.s.movements {
		if mv.ItemID != itemID || mv.WarehouseID != warehouseID {
			continue
		}
		k := groupKey{}
		if mv.LotID != nil {
			k.lot = *mv.LotID
		}
		if mv.SerialID != nil {
			k.serial = *mv.SerialID
		}
		if mv.Expiry != nil {
			k.expiry = mv.Expiry.Format(time.RFC3339Nano)
		}
		g, ok := groups[k]
		if !ok {
			g = &batch.Candidate{
				LotID:         mv.LotID,
				SerialID:      mv.SerialID,
				Expiry:        mv.Expiry,
				FirstMovement: mv.MovedAt,
			}
			groups[k] = g
		}
		g.Quantity = g.Quantity.Add(mv.Quantity)
		if mv.MovedAt.Before(g.FirstMovement) {
			g.FirstMovement = mv.MovedAt
		}
	}
	var out []batch.Candidate
	for _, g := range groups {
		if g.Quantity.IsPositive() {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstMovement.Before(out[j].FirstMovement) })
	return out, nil
}

func (m *memMovements) LotBalances(_ context.Context, lotID string) ([]repository.LotBalance, error) {
	type balKey struct{ item, warehouse string }
	sums := make(map[balKey]decimal.Decimal)
	for _, mv := range m.s.movements {
		if mv.LotID == nil || *mv.LotID != lotID {
			continue
		}
		k := balKey{item: mv.ItemID, warehouse: mv.WarehouseID}
		sums[k] = sums[k].Add(mv.Quantity)
	}
	var out []repository.LotBalance
	for k, q := range sums {
		if !q.IsZero() {
			out = append(out, repository.LotBalance{ItemID: k.item, WarehouseID: k.warehouse, Quantity: q})
		}
	}
	return out, nil
}

func (m *memMovements) ListByDocument(_ context.Context, documentID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, mv := range m.s.movements {
		if mv.DocumentID != nil && *mv.DocumentID == documentID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (m *memMovements) ListByItem(_ context.Context, itemID string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, mv := range m.s.movements {
		if mv.ItemID == itemID {
			out = append(out, mv)
		}
	}
	return out, nil
}

// ─── documentos ───────────────────────────────────────────────────────────────

type memDocuments struct{ s *memStore }

func (m *memDocuments) Create(_ context.Context, d *entity.Document) error {
	cp := *d
	m.s.documents[d.ID] = &cp
	return nil
}

func (m *memDocuments) GetByID(_ context.Context, id string) (*entity.Document, error) {
	d, ok := m.s.documents[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memDocuments) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return m.GetByID(ctx, id)
}

func (m *memDocuments) SetStatus(_ context.Context, id, status string) error {
	if d, ok := m.s.documents[id]; ok {
		d.Status = status
	}
	return nil
}

func (m *memDocuments) List(_ context.Context, _ repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range m.s.documents {
		out = append(out, d)
	}
	return out, nil
}

// ─── catálogos ────────────────────────────────────────────────────────────────

type memItems struct{ s *memStore }

func (m *memItems) Create(_ context.Context, i *entity.Item) error {
	m.s.items[i.ID] = i
	return nil
}

func (m *memItems) GetByID(_ context.Context, id string) (*entity.Item, error) {
	return m.s.items[id], nil
}

func (m *memItems) List(_ context.Context, _, _ int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, i := range m.s.items {
		out = append(out, i)
	}
	return out, nil
}

type memWarehouses struct{ s *memStore }

func (m *memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	m.s.warehouses[w.ID] = w
	return nil
}

func (m *memWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return m.s.warehouses[id], nil
}

func (m *memWarehouses) List(_ context.Context, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range m.s.warehouses {
		out = append(out, w)
	}
	return out, nil
}

// ─── lotes y seriales ─────────────────────────────────────────────────────────

type memLots struct{ s *memStore }

func (m *memLots) Create(_ context.Context, l *entity.Lot) error {
	cp := *l
	m.s.lots[l.ID] = &cp
	return nil
}

func (m *memLots) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	l, ok := m.s.lots[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *memLots) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return m.GetByID(ctx, id)
}

func (m *memLots) SetStatus(_ context.Context, id, status string) error {
	if l, ok := m.s.lots[id]; ok {
		l.Status = status
	}
	return nil
}

func (m *memLots) List(_ context.Context, _, _ int) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range m.s.lots {
		out = append(out, l)
	}
	return out, nil
}

func (m *memLots) ListExpiring(_ context.Context, until time.Time) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range m.s.lots {
		if l.Status != entity.LotStatusDisposed && l.Expiry != nil && !l.Expiry.After(until) {
			out = append(out, l)
		}
	}
	return out, nil
}

type memSerials struct{ s *memStore }

func (m *memSerials) Create(_ context.Context, srl *entity.Serial) error {
	cp := *srl
	m.s.serials[srl.ID] = &cp
	return nil
}

func (m *memSerials) GetByID(_ context.Context, id string) (*entity.Serial, error) {
	return m.s.serials[id], nil
}

func (m *memSerials) SetStatus(_ context.Context, id, status string) error {
	if srl, ok := m.s.serials[id]; ok {
		srl.Status = status
	}
	return nil
}

func (m *memSerials) List(_ context.Context, _, _ int) ([]*entity.Serial, error) {
	var out []*entity.Serial
	for _, srl := range m.s.serials {
		out = append(out, srl)
	}
	return out, nil
}

// ─── inventarios ──────────────────────────────────────────────────────────────

type memInventories struct{ s *memStore }

func (m *memInventories) Create(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	m.s.inventories[inv.ID] = &cp
	return nil
}

func (m *memInventories) GetByID(_ context.Context, id string) (*entity.Inventory, error) {
	inv, ok := m.s.inventories[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInventories) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return m.GetByID(ctx, id)
}

func (m *memInventories) Update(_ context.Context, inv *entity.Inventory) error {
	cp := *inv
	m.s.inventories[inv.ID] = &cp
	return nil
}

func (m *memInventories) List(_ context.Context, _, _ int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range m.s.inventories {
		out = append(out, inv)
	}
	return out, nil
}

func (m *memInventories) AnyFrozen(_ context.Context) (bool, error) {
	for _, inv := range m.s.inventories {
		if inv.Status == entity.InventoryStatusFrozen {
			return true, nil
		}
	}
	return false, nil
}
