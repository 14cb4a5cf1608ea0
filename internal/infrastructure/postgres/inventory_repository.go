package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación sobre PostgreSQL (usable con conexión ligada o tx).
// Los campos estructurados del ciclo (scope, counts, differences, delta,
// approvals, audit) se persisten como JSONB.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar conexión ligada o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = "id, company_id, status, scope, counts, differences, delta, approvals, audit, created_at, closed_at"

// Create persiste un ciclo nuevo.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	doc, err := marshalInventory(inv)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO inventories (id, status, scope, counts, differences, delta, approvals, audit, created_at, closed_at)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5::jsonb, $6::jsonb, $7::jsonb, $8::jsonb, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.Status, doc.scope, doc.counts, doc.differences, doc.delta, doc.approvals, doc.audit,
		inv.CreatedAt, inv.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un ciclo por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el ciclo bloqueando la fila (SELECT FOR UPDATE):
// toda transición de estado corre con la fila bloqueada.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error) {
	return r.get(ctx, id, true)
}

func (r *InventoryRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	inv, err := scanInventory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// Update persiste el estado completo del ciclo tras una transición.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	doc, err := marshalInventory(inv)
	if err != nil {
		return err
	}
	query := `
		UPDATE inventories
		SET status = $2, scope = $3::jsonb, counts = $4::jsonb, differences = $5::jsonb,
		    delta = $6::jsonb, approvals = $7::jsonb, audit = $8::jsonb, closed_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Status, doc.scope, doc.counts, doc.differences, doc.delta, doc.approvals, doc.audit,
		inv.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory: ciclo %s no visible", inv.ID)
	}
	return nil
}

// List lista ciclos con paginación.
func (r *InventoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// AnyFrozen informa si la empresa ligada tiene algún ciclo congelado.
// La política RLS acota la consulta a la empresa de la sesión.
func (r *InventoryRepo) AnyFrozen(ctx context.Context) (bool, error) {
	var frozen bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM inventories WHERE status = $1)`,
		entity.InventoryStatusFrozen,
	).Scan(&frozen)
	if err != nil {
		return false, fmt.Errorf("any frozen: %w", err)
	}
	return frozen, nil
}

// inventoryJSON columnas JSONB ya serializadas.
type inventoryJSON struct {
	scope, counts, differences, delta, approvals, audit []byte
}

func marshalInventory(inv *entity.Inventory) (*inventoryJSON, error) {
	var doc inventoryJSON
	var err error
	if doc.scope, err = marshalOrEmpty(inv.Scope); err != nil {
		return nil, fmt.Errorf("marshal scope: %w", err)
	}
	if doc.counts, err = marshalOrEmpty(inv.Counts); err != nil {
		return nil, fmt.Errorf("marshal counts: %w", err)
	}
	if doc.differences, err = marshalOrEmpty(inv.Differences); err != nil {
		return nil, fmt.Errorf("marshal differences: %w", err)
	}
	if doc.delta, err = marshalOrEmpty(inv.Delta); err != nil {
		return nil, fmt.Errorf("marshal delta: %w", err)
	}
	if doc.approvals, err = marshalOrEmpty(inv.Approvals); err != nil {
		return nil, fmt.Errorf("marshal approvals: %w", err)
	}
	if doc.audit, err = marshalOrEmpty(inv.Audit); err != nil {
		return nil, fmt.Errorf("marshal audit: %w", err)
	}
	return &doc, nil
}

// marshalOrEmpty serializa el slice; nil se persiste como lista vacía para
// que el JSONB nunca sea null.
func marshalOrEmpty[T any](v []T) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	var scope, counts, differences, delta, approvals, audit []byte
	if err := row.Scan(&inv.ID, &inv.CompanyID, &inv.Status,
		&scope, &counts, &differences, &delta, &approvals, &audit,
		&inv.CreatedAt, &inv.ClosedAt); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{scope, &inv.Scope},
		{counts, &inv.Counts},
		{differences, &inv.Differences},
		{delta, &inv.Delta},
		{approvals, &inv.Approvals},
		{audit, &inv.Audit},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("unmarshal inventory: %w", err)
		}
	}
	return &inv, nil
}
