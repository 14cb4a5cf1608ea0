package inventory

import (
	"context"

	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

// RepoSet repositorios atados a una misma conexión ligada a empresa (y, según
// el runner, a una misma transacción).
type RepoSet struct {
	Movements   repository.MovementRepository
	Documents   repository.DocumentRepository
	Items       repository.ItemRepository
	Warehouses  repository.WarehouseRepository
	Lots        repository.LotRepository
	Serials     repository.SerialRepository
	Inventories repository.InventoryRepository
}

// SessionRunner ejecuta una función con repositorios atados a una conexión
// con la empresa del contexto ya ligada a la sesión. Garantiza que la
// variable de sesión se fija antes de cualquier query y se limpia al
// terminar, y que el trabajo transaccional hace Commit o Rollback atómico.
type SessionRunner interface {
	// Run ejecuta fn dentro de una transacción con aislamiento por defecto.
	Run(ctx context.Context, fn func(r RepoSet) error) error

	// RunSerializable ejecuta fn dentro de una transacción SERIALIZABLE:
	// necesario para chequeos leer-luego-escribir sobre agregados del ledger
	// (dos salidas concurrentes no pueden sobre-girar el stock).
	RunSerializable(ctx context.Context, fn func(r RepoSet) error) error
}
