package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

// ConfirmDocumentUseCase confirma un documento: valida el batch completo de
// movimientos propuestos contra artículos, lotes y existencias, y si todo
// pasa los escribe al ledger y marca el documento como confirmado, todo
// dentro de una sola transacción SERIALIZABLE (todo o nada).
type ConfirmDocumentUseCase struct {
	runner SessionRunner
	now    func() time.Time
}

// NewConfirmDocumentUseCase construye el caso de uso.
func NewConfirmDocumentUseCase(runner SessionRunner) *ConfirmDocumentUseCase {
	return &ConfirmDocumentUseCase{runner: runner, now: time.Now}
}

// Confirm valida y confirma. Cualquier movimiento inválido rechaza la
// confirmación completa: nada se escribe parcialmente.
//
// Orden de chequeos: documento en draft -> ningún inventario congelado ->
// por movimiento: campos requeridos, exigencia de lote/serial según el
// artículo, disponibilidad del lote, y para salidas que la existencia
// resultante no quede negativa (contando los movimientos anteriores del
// mismo batch).
func (uc *ConfirmDocumentUseCase) Confirm(ctx context.Context, documentID, userID string, movements []dto.MovementRequest) (*dto.DocumentResponse, error) {
	if documentID == "" || len(movements) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, mv := range movements {
		if mv.ItemID == "" || mv.WarehouseID == "" || mv.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := uc.now()
	var doc *entity.Document

	err := uc.runner.RunSerializable(ctx, func(r RepoSet) error {
		var err error
		doc, err = r.Documents.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.DocumentStatusDraft {
			return domain.ErrConflict
		}

		// Un inventario físico congelado bloquea toda confirmación de la
		// empresa, sin importar qué artículos toca el documento.
		frozen, err := r.Inventories.AnyFrozen(ctx)
		if err != nil {
			return err
		}
		if frozen {
			return domain.ErrInventoryFrozen
		}

		// pending acumula los deltas del propio batch para que un segundo
		// retiro sobre la misma combinación vea el efecto del primero.
		pending := make(map[stockKey]decimal.Decimal)
		items := make(map[string]*entity.Item)
		rows := make([]*entity.Movement, 0, len(movements))

		for _, mv := range movements {
			item, ok := items[mv.ItemID]
			if !ok {
				item, err = r.Items.GetByID(ctx, mv.ItemID)
				if err != nil {
					return err
				}
				if item == nil {
					return domain.ErrNotFound
				}
				items[mv.ItemID] = item
			}
			wh, err := r.Warehouses.GetByID(ctx, mv.WarehouseID)
			if err != nil {
				return err
			}
			if wh == nil {
				return domain.ErrNotFound
			}
			if item.LotTracked && mv.LotID == nil {
				return domain.ErrInvalidInput
			}
			if item.SerialTracked && mv.SerialID == nil {
				return domain.ErrInvalidInput
			}

			expiry := mv.Expiry
			if mv.LotID != nil {
				lot, err := r.Lots.GetByID(ctx, *mv.LotID)
				if err != nil {
					return err
				}
				if lot == nil {
					return domain.ErrNotFound
				}
				if lot.ItemID != mv.ItemID {
					return domain.ErrInvalidInput
				}
				if !lot.Available(now) {
					return domain.ErrLotUnavailable
				}
				if expiry == nil {
					expiry = lot.Expiry
				}
			}

			key := newStockKey(mv.ItemID, mv.WarehouseID, mv.LotID, mv.SerialID)
			if mv.Quantity.IsNegative() {
				onHand, err := r.Movements.QuantityOnHand(ctx, repository.MovementFilter{
					ItemID:      mv.ItemID,
					WarehouseID: mv.WarehouseID,
					LotID:       mv.LotID,
					SerialID:    mv.SerialID,
				})
				if err != nil {
					return err
				}
				if onHand.Add(pending[key]).Add(mv.Quantity).IsNegative() {
					return domain.ErrInsufficientStock
				}
			}
			pending[key] = pending[key].Add(mv.Quantity)

			docID := documentID
			rows = append(rows, &entity.Movement{
				ID:          uuid.New().String(),
				DocumentID:  &docID,
				ItemID:      mv.ItemID,
				WarehouseID: mv.WarehouseID,
				Quantity:    mv.Quantity,
				LotID:       mv.LotID,
				SerialID:    mv.SerialID,
				Expiry:      expiry,
				MovedAt:     now,
				CreatedBy:   userID,
			})
		}

		for _, row := range rows {
			if err := r.Movements.Append(ctx, row); err != nil {
				return err
			}
		}
		if err := r.Documents.SetStatus(ctx, documentID, entity.DocumentStatusConfirmed); err != nil {
			return err
		}
		doc.Status = entity.DocumentStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToDocumentResponse(doc), nil
}

// stockKey combinación artículo/bodega/lote/serial sobre la que se acumula
// un saldo pendiente dentro del batch.
type stockKey struct {
	item      string
	warehouse string
	lot       string
	serial    string
}

func newStockKey(itemID, warehouseID string, lotID, serialID *string) stockKey {
	k := stockKey{item: itemID, warehouse: warehouseID}
	if lotID != nil {
		k.lot = *lotID
	}
	if serialID != nil {
		k.serial = *serialID
	}
	return k
}
