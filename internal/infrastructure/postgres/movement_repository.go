package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/warehouse-pro/internal/domain/batch"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de stock sobre PostgreSQL (usable con conexión ligada o tx).
// Solo INSERT y SELECT: el ledger es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar conexión ligada o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = "id, company_id, document_id, item_id, warehouse_id, quantity, lot_id, serial_id, expiry, moved_at, created_by"

// Append agrega una fila al ledger. company_id lo aporta el default de la
// tabla desde la variable de sesión; la política RLS valida la coincidencia.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.MovedAt.IsZero() {
		m.MovedAt = time.Now()
	}
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	query := `
		INSERT INTO stock_movements (id, document_id, item_id, warehouse_id, quantity, lot_id, serial_id, expiry, moved_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.DocumentID, m.ItemID, m.WarehouseID, m.Quantity,
		m.LotID, m.SerialID, m.Expiry, m.MovedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// QuantityOnHand suma con signo los movimientos que casan con el filtro.
// Lote y serial en nil significan "cualquiera": la existencia global del
// artículo en la bodega.
func (r *MovementRepo) QuantityOnHand(ctx context.Context, f repository.MovementFilter) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements
		WHERE item_id = $1 AND warehouse_id = $2
		  AND ($3::text IS NULL OR lot_id = $3)
		  AND ($4::text IS NULL OR serial_id = $4)`
	var qty decimal.Decimal
	err := r.q.QueryRow(ctx, query, f.ItemID, f.WarehouseID, f.LotID, f.SerialID).Scan(&qty)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quantity on hand: %w", err)
	}
	return qty, nil
}

// BatchCandidates agrupa movimientos por (lote, serial, vencimiento) y
// devuelve los grupos con remanente positivo; el orden FEFO/FIFO lo decide
// batch.Pick en el dominio.
func (r *MovementRepo) BatchCandidates(ctx context.Context, itemID, warehouseID string) ([]batch.Candidate, error) {
	query := `
		SELECT lot_id, serial_id, expiry, qty, first_movement FROM (
			SELECT lot_id, serial_id, expiry, SUM(quantity) AS qty, MIN(moved_at) AS first_movement
			FROM stock_movements
			WHERE item_id = $1 AND warehouse_id = $2
			GROUP BY lot_id, serial_id, expiry
		) s
		WHERE qty > 0`
	rows, err := r.q.Query(ctx, query, itemID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("batch candidates: %w", err)
	}
	defer rows.Close()

	var out []batch.Candidate
	for rows.Next() {
		var c batch.Candidate
		if err := rows.Scan(&c.LotID, &c.SerialID, &c.Expiry, &c.Quantity, &c.FirstMovement); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LotBalances devuelve el remanente por bodega de un lote, omitiendo las
// bodegas cuyo remanente ya es cero.
func (r *MovementRepo) LotBalances(ctx context.Context, lotID string) ([]repository.LotBalance, error) {
	query := `
		SELECT item_id, warehouse_id, SUM(quantity) AS qty
		FROM stock_movements
		WHERE lot_id = $1
		GROUP BY item_id, warehouse_id
		HAVING SUM(quantity) <> 0`
	rows, err := r.q.Query(ctx, query, lotID)
	if err != nil {
		return nil, fmt.Errorf("lot balances: %w", err)
	}
	defer rows.Close()

	var out []repository.LotBalance
	for rows.Next() {
		var b repository.LotBalance
		if err := rows.Scan(&b.ItemID, &b.WarehouseID, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan lot balance: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByDocument lista los movimientos escritos por un documento.
func (r *MovementRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE document_id = $1
		ORDER BY moved_at`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list by document: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByItem lista movimientos de un artículo en un rango de fechas.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND moved_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND moved_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY moved_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by item: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.DocumentID, &m.ItemID, &m.WarehouseID,
			&m.Quantity, &m.LotID, &m.SerialID, &m.Expiry, &m.MovedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
