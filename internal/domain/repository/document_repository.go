package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// DocumentFilter filtros de listado de documentos.
type DocumentFilter struct {
	Type   string
	Causal string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// DocumentRepository puerto de persistencia de documentos.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate obtiene el documento bloqueando la fila (SELECT FOR UPDATE)
	// para la transición draft -> confirmed/cancelled.
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	SetStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, error)
}
