package repository

import (
	"context"

	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// InventoryRepository puerto de persistencia de ciclos de inventario físico.
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila del ciclo para una transición de estado.
	GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context, limit, offset int) ([]*entity.Inventory, error)
	// AnyFrozen informa si la empresa ligada tiene algún ciclo congelado
	// (bloquea confirmaciones de documentos a nivel de toda la empresa).
	AnyFrozen(ctx context.Context) (bool, error)
}
