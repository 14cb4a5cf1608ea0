package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
)

// LotUseCase registro y ciclo de vida de lotes y seriales.
// active <-> blocked es reversible; disposed es terminal y exige llevar el
// remanente del lote a cero en todas las bodegas.
type LotUseCase struct {
	runner SessionRunner
	now    func() time.Time
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(runner SessionRunner) *LotUseCase {
	return &LotUseCase{runner: runner, now: time.Now}
}

// RegisterLot registra un lote nuevo en estado active.
func (uc *LotUseCase) RegisterLot(ctx context.Context, in dto.RegisterLotRequest) (*dto.LotResponse, error) {
	if in.ItemID == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	companyID, err := companyctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	lot := &entity.Lot{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ItemID:    in.ItemID,
		Code:      in.Code,
		Expiry:    in.Expiry,
		Status:    entity.LotStatusActive,
		CreatedAt: uc.now(),
	}
	err = uc.runner.Run(ctx, func(r RepoSet) error {
		item, err := r.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		return r.Lots.Create(ctx, lot)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToLotResponse(lot), nil
}

// RegisterSerial registra un serial nuevo en estado active.
func (uc *LotUseCase) RegisterSerial(ctx context.Context, in dto.RegisterSerialRequest) (*dto.SerialResponse, error) {
	if in.ItemID == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	companyID, err := companyctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	s := &entity.Serial{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ItemID:    in.ItemID,
		Code:      in.Code,
		Expiry:    in.Expiry,
		Status:    entity.LotStatusActive,
		CreatedAt: uc.now(),
	}
	err = uc.runner.Run(ctx, func(r RepoSet) error {
		item, err := r.Items.GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		return r.Serials.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSerialResponse(s), nil
}

// Block bloquea un lote activo. Un lote bloqueado no admite nuevas salidas.
func (uc *LotUseCase) Block(ctx context.Context, lotID string) (*dto.LotResponse, error) {
	return uc.setStatus(ctx, lotID, entity.LotStatusActive, entity.LotStatusBlocked)
}

// Unblock reactiva un lote bloqueado.
func (uc *LotUseCase) Unblock(ctx context.Context, lotID string) (*dto.LotResponse, error) {
	return uc.setStatus(ctx, lotID, entity.LotStatusBlocked, entity.LotStatusActive)
}

// Dispose da de baja un lote: escribe un movimiento correctivo negativo por
// cada bodega con remanente hasta dejarlo en cero y marca el lote como
// disposed, todo en una transacción SERIALIZABLE. Un lote con vencimiento
// futuro no puede darse de baja; uno sin vencimiento sí. Repetir la baja es
// un conflicto.
func (uc *LotUseCase) Dispose(ctx context.Context, lotID, userID string) (*dto.LotResponse, error) {
	if lotID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var lot *entity.Lot
	err := uc.runner.RunSerializable(ctx, func(r RepoSet) error {
		var err error
		lot, err = r.Lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.Status == entity.LotStatusDisposed {
			return domain.ErrConflict
		}
		// Sin fecha de vencimiento no hay nada que esperar: se permite la baja.
		if lot.Expiry != nil && !lot.Expired(now) {
			return domain.ErrConflict
		}

		balances, err := r.Movements.LotBalances(ctx, lotID)
		if err != nil {
			return err
		}
		for _, b := range balances {
			id := lotID
			if err := r.Movements.Append(ctx, &entity.Movement{
				ID:          uuid.New().String(),
				ItemID:      b.ItemID,
				WarehouseID: b.WarehouseID,
				Quantity:    b.Quantity.Neg(),
				LotID:       &id,
				Expiry:      lot.Expiry,
				MovedAt:     now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}
		if err := r.Lots.SetStatus(ctx, lotID, entity.LotStatusDisposed); err != nil {
			return err
		}
		lot.Status = entity.LotStatusDisposed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToLotResponse(lot), nil
}

// ListExpiring lista lotes no dados de baja que vencen dentro de la ventana.
func (uc *LotUseCase) ListExpiring(ctx context.Context, window time.Duration) ([]*dto.LotResponse, error) {
	until := uc.now().Add(window)
	var lots []*entity.Lot
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		lots, err = r.Lots.ListExpiring(ctx, until)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.ToLotResponse(l))
	}
	return out, nil
}

// List lista lotes de la empresa ligada.
func (uc *LotUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.LotResponse, error) {
	page.Normalize()
	var lots []*entity.Lot
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		lots, err = r.Lots.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.ToLotResponse(l))
	}
	return out, nil
}

func (uc *LotUseCase) setStatus(ctx context.Context, lotID, from, to string) (*dto.LotResponse, error) {
	if lotID == "" {
		return nil, domain.ErrInvalidInput
	}
	var lot *entity.Lot
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		lot, err = r.Lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		if lot.Status != from {
			return domain.ErrConflict
		}
		if err := r.Lots.SetStatus(ctx, lotID, to); err != nil {
			return err
		}
		lot.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToLotResponse(lot), nil
}
