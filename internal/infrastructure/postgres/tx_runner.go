package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/warehouse-pro/internal/application/inventory"
)

// Asegura que TxRunner implementa inventory.SessionRunner.
var _ inventory.SessionRunner = (*TxRunner)(nil)

// serializableRetries reintentos ante fallo de serialización (40001) antes de
// propagar el error al llamador.
const serializableRetries = 3

// TxRunner ejecuta callbacks con repositorios atados a una transacción sobre
// una conexión ligada a la empresa del contexto (vía SessionBinder).
type TxRunner struct {
	binder *SessionBinder
}

// NewTxRunner construye el runner con el binder de sesión.
func NewTxRunner(binder *SessionBinder) *TxRunner {
	return &TxRunner{binder: binder}
}

// Run inicia una transacción con aislamiento por defecto, ejecuta fn con los
// repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(rs inventory.RepoSet) error) error {
	return r.run(ctx, pgx.TxOptions{}, fn)
}

// RunSerializable igual que Run pero con aislamiento SERIALIZABLE, con
// reintento acotado ante fallos de serialización.
func (r *TxRunner) RunSerializable(ctx context.Context, fn func(rs inventory.RepoSet) error) error {
	var err error
	for attempt := 0; attempt < serializableRetries; attempt++ {
		err = r.run(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(rs inventory.RepoSet) error) error {
	return r.binder.WithCompany(ctx, func(conn *pgxpool.Conn) error {
		tx, err := conn.BeginTx(ctx, opts)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if err := fn(newRepoSet(tx)); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// newRepoSet ata todos los repositorios al mismo Querier (tx o conexión).
func newRepoSet(q Querier) inventory.RepoSet {
	return inventory.RepoSet{
		Movements:   NewMovementRepository(q),
		Documents:   NewDocumentRepository(q),
		Items:       NewItemRepository(q),
		Warehouses:  NewWarehouseRepository(q),
		Lots:        NewLotRepository(q),
		Serials:     NewSerialRepository(q),
		Inventories: NewInventoryRepository(q),
	}
}
