package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// LotRepository puerto de persistencia de lotes. El estado es el único campo
// mutable; el resto de la fila es inmutable tras el registro.
type LotRepository interface {
	Create(ctx context.Context, l *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	SetStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Lot, error)
	// ListExpiring lista lotes no dados de baja cuyo vencimiento cae dentro
	// de la ventana [ahora, until].
	ListExpiring(ctx context.Context, until time.Time) ([]*entity.Lot, error)
}

// SerialRepository puerto de persistencia de seriales.
type SerialRepository interface {
	Create(ctx context.Context, s *entity.Serial) error
	GetByID(ctx context.Context, id string) (*entity.Serial, error)
	SetStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Serial, error)
}
