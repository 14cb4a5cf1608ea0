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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación sobre PostgreSQL (usable con conexión ligada o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar conexión ligada o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste un documento en draft.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	lines, err := json.Marshal(d.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	createdBy := (*string)(nil)
	if d.CreatedBy != "" {
		createdBy = &d.CreatedBy
	}
	query := `
		INSERT INTO documents (id, type, status, causal, lines, created_by)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)`
	_, err = r.q.Exec(ctx, query, d.ID, d.Type, d.Status, d.Causal, lines, createdBy)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el documento bloqueando la fila (SELECT FOR UPDATE).
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, id, true)
}

func (r *DocumentRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Document, error) {
	query := `
		SELECT id, company_id, type, status, causal, lines, created_at, created_by
		FROM documents WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// SetStatus cambia el estado del documento (única mutación permitida).
func (r *DocumentRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE documents SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set document status: documento %s no visible", id)
	}
	return nil
}

// List lista documentos con filtros opcionales.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	query := `
		SELECT id, company_id, type, status, causal, lines, created_at, created_by
		FROM documents`
	var args []any
	var conds []string
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Causal != "" {
		args = append(args, f.Causal)
		conds = append(conds, fmt.Sprintf("causal = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var lines []byte
	var createdBy *string
	if err := row.Scan(&d.ID, &d.CompanyID, &d.Type, &d.Status, &d.Causal, &lines, &d.CreatedAt, &createdBy); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &d.Lines); err != nil {
			return nil, fmt.Errorf("unmarshal lines: %w", err)
		}
	}
	if createdBy != nil {
		d.CreatedBy = *createdBy
	}
	return &d, nil
}
