package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación sobre PostgreSQL (usable con conexión ligada o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar conexión ligada o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create registra un lote nuevo (estado active).
func (r *LotRepo) Create(ctx context.Context, l *entity.Lot) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lots (id, item_id, code, expiry, status)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, l.ID, l.ItemID, l.Code, l.Expiry, l.Status)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE),
// para transiciones de estado sin carreras (p. ej. dispose).
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return r.get(ctx, id, true)
}

func (r *LotRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Lot, error) {
	query := `
		SELECT id, company_id, item_id, code, expiry, status, created_at
		FROM lots WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var l entity.Lot
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.CompanyID, &l.ItemID, &l.Code, &l.Expiry, &l.Status, &l.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// SetStatus cambia el estado del lote.
func (r *LotRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE lots SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set lot status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set lot status: lote %s no visible", id)
	}
	return nil
}

// List lista lotes con paginación.
func (r *LotRepo) List(ctx context.Context, limit, offset int) ([]*entity.Lot, error) {
	query := `
		SELECT id, company_id, item_id, code, expiry, status, created_at
		FROM lots ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ItemID, &l.Code, &l.Expiry, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListExpiring lista lotes no dados de baja con vencimiento hasta la fecha dada.
func (r *LotRepo) ListExpiring(ctx context.Context, until time.Time) ([]*entity.Lot, error) {
	query := `
		SELECT id, company_id, item_id, code, expiry, status, created_at
		FROM lots
		WHERE expiry IS NOT NULL AND expiry <= $1 AND status <> $2
		ORDER BY expiry`
	rows, err := r.q.Query(ctx, query, until, entity.LotStatusDisposed)
	if err != nil {
		return nil, fmt.Errorf("list expiring lots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ItemID, &l.Code, &l.Expiry, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

var _ repository.SerialRepository = (*SerialRepo)(nil)

// SerialRepo implementación sobre PostgreSQL (usable con conexión ligada o tx).
type SerialRepo struct {
	q Querier
}

// NewSerialRepository construye el adaptador. Pasar conexión ligada o tx (Querier).
func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

// Create registra un serial nuevo (estado active).
func (r *SerialRepo) Create(ctx context.Context, s *entity.Serial) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO serials (id, item_id, code, expiry, status)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.ItemID, s.Code, s.Expiry, s.Status)
	if err != nil {
		return fmt.Errorf("insert serial: %w", err)
	}
	return nil
}

// GetByID obtiene un serial por ID.
func (r *SerialRepo) GetByID(ctx context.Context, id string) (*entity.Serial, error) {
	query := `
		SELECT id, company_id, item_id, code, expiry, status, created_at
		FROM serials WHERE id = $1`
	var s entity.Serial
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.ItemID, &s.Code, &s.Expiry, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get serial: %w", err)
	}
	return &s, nil
}

// SetStatus cambia el estado del serial.
func (r *SerialRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE serials SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set serial status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set serial status: serial %s no visible", id)
	}
	return nil
}

// List lista seriales con paginación.
func (r *SerialRepo) List(ctx context.Context, limit, offset int) ([]*entity.Serial, error) {
	query := `
		SELECT id, company_id, item_id, code, expiry, status, created_at
		FROM serials ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list serials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Serial
	for rows.Next() {
		var s entity.Serial
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.ItemID, &s.Code, &s.Expiry, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
