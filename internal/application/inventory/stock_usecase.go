package inventory

import (
	"context"

	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/batch"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

// StockUseCase consultas derivadas del ledger: existencia y selección del
// próximo lote a consumir.
type StockUseCase struct {
	runner        SessionRunner
	defaultPolicy batch.Policy
}

// NewStockUseCase construye el caso de uso con la política de consumo
// configurada (FEFO o FIFO).
func NewStockUseCase(runner SessionRunner, defaultPolicy batch.Policy) *StockUseCase {
	return &StockUseCase{runner: runner, defaultPolicy: defaultPolicy}
}

// OnHand devuelve la existencia para artículo+bodega, opcionalmente acotada
// a lote o serial.
func (uc *StockUseCase) OnHand(ctx context.Context, f repository.MovementFilter) (*dto.OnHandResponse, error) {
	if f.ItemID == "" || f.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	out := &dto.OnHandResponse{
		ItemID:      f.ItemID,
		WarehouseID: f.WarehouseID,
		LotID:       f.LotID,
		SerialID:    f.SerialID,
	}
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		qty, err := r.Movements.QuantityOnHand(ctx, f)
		if err != nil {
			return err
		}
		out.Quantity = qty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NextBatch devuelve el próximo lote/serial a consumir para artículo+bodega
// según la política pedida (o la configurada si policy viene vacío).
// Sin candidato con remanente positivo devuelve nil, no error.
func (uc *StockUseCase) NextBatch(ctx context.Context, itemID, warehouseID, policy string) (*dto.NextBatchResponse, error) {
	if itemID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	p := uc.defaultPolicy
	if policy != "" {
		p = batch.ParsePolicy(policy)
	}
	var picked *batch.Candidate
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		candidates, err := r.Movements.BatchCandidates(ctx, itemID, warehouseID)
		if err != nil {
			return err
		}
		picked = batch.Pick(candidates, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if picked == nil {
		return nil, nil
	}
	return &dto.NextBatchResponse{
		Policy:        string(p),
		LotID:         picked.LotID,
		SerialID:      picked.SerialID,
		Expiry:        picked.Expiry,
		Quantity:      picked.Quantity,
		FirstMovement: picked.FirstMovement,
	}, nil
}

// ItemMovements lista los movimientos de un artículo (historial del ledger).
func (uc *StockUseCase) ItemMovements(ctx context.Context, itemID string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.Normalize()
	var out []*dto.MovementResponse
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		movs, err := r.Movements.ListByItem(ctx, itemID, nil, nil, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		for _, m := range movs {
			out = append(out, dto.ToMovementResponse(m))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
