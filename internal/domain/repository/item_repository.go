package repository

import (
	"context"

	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// ItemRepository puerto de persistencia de artículos.
type ItemRepository interface {
	Create(ctx context.Context, i *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
}

// WarehouseRepository puerto de persistencia de bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}
