package inventory

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
)

// LifecycleUseCase orquesta el ciclo de inventario físico:
// crear -> congelar -> contar -> aprobar (x2) -> cerrar.
// Las reglas de transición viven en la entidad; este caso de uso solo
// snapshot-ea existencias, persiste y al cerrar escribe el delta al ledger.
type LifecycleUseCase struct {
	runner SessionRunner
	now    func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(runner SessionRunner) *LifecycleUseCase {
	return &LifecycleUseCase{runner: runner, now: time.Now}
}

// Create abre un ciclo nuevo. La cantidad esperada de cada línea del alcance
// se snapshot-ea del ledger en este momento; conteos posteriores se comparan
// contra este snapshot, no contra la existencia al momento de contar.
func (uc *LifecycleUseCase) Create(ctx context.Context, userID string, scope []dto.ScopeLineRequest) (*dto.InventoryResponse, error) {
	if len(scope) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, s := range scope {
		if s.ItemID == "" || s.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	companyID, err := companyctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var inv *entity.Inventory
	err = uc.runner.Run(ctx, func(r RepoSet) error {
		lines := make([]entity.ScopeLine, 0, len(scope))
		for _, s := range scope {
			expected, err := r.Movements.QuantityOnHand(ctx, repository.MovementFilter{
				ItemID:      s.ItemID,
				WarehouseID: s.WarehouseID,
				LotID:       s.LotID,
			})
			if err != nil {
				return err
			}
			lines = append(lines, entity.ScopeLine{
				ItemID:      s.ItemID,
				WarehouseID: s.WarehouseID,
				LotID:       s.LotID,
				Expected:    expected,
			})
		}
		inv = entity.NewInventory(uuid.New().String(), companyID, userID, lines, now)
		return r.Inventories.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(inv), nil
}

// Freeze congela el ciclo: mientras exista un ciclo congelado, ninguna
// confirmación de documentos pasa para la empresa.
func (uc *LifecycleUseCase) Freeze(ctx context.Context, inventoryID, userID string) (*dto.InventoryResponse, error) {
	return uc.transition(ctx, inventoryID, func(inv *entity.Inventory) error {
		return inv.Freeze(userID, uc.now())
	})
}

// RecordCounts registra conteos físicos y recalcula diferencias y delta.
func (uc *LifecycleUseCase) RecordCounts(ctx context.Context, inventoryID, userID string, counts []dto.CountLineRequest) (*dto.InventoryResponse, error) {
	if len(counts) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines := make([]entity.CountLine, 0, len(counts))
	for _, c := range counts {
		if c.ItemID == "" || c.WarehouseID == "" {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.CountLine{
			ItemID:      c.ItemID,
			WarehouseID: c.WarehouseID,
			LotID:       c.LotID,
			Counted:     c.Counted,
		})
	}
	return uc.transition(ctx, inventoryID, func(inv *entity.Inventory) error {
		return inv.RecordCounts(userID, lines, uc.now())
	})
}

// Approve suma la aprobación del actor al ciclo.
func (uc *LifecycleUseCase) Approve(ctx context.Context, inventoryID, userID string) (*dto.InventoryResponse, error) {
	return uc.transition(ctx, inventoryID, func(inv *entity.Inventory) error {
		return inv.Approve(userID, uc.now())
	})
}

// Close cierra el ciclo (requiere quórum de aprobaciones) y escribe cada
// línea del delta como movimiento correctivo al ledger, en la misma
// transacción que el cambio de estado. Retorna el delta autoritativo y el
// reporte de variaciones.
func (uc *LifecycleUseCase) Close(ctx context.Context, inventoryID, userID string) (*dto.CloseInventoryResponse, error) {
	if inventoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var inv *entity.Inventory
	err := uc.runner.RunSerializable(ctx, func(r RepoSet) error {
		var err error
		inv, err = r.Inventories.GetForUpdate(ctx, inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := inv.Close(userID, now); err != nil {
			return err
		}
		for _, d := range inv.Delta {
			if err := r.Movements.Append(ctx, &entity.Movement{
				ID:          uuid.New().String(),
				ItemID:      d.ItemID,
				WarehouseID: d.WarehouseID,
				Quantity:    d.Quantity,
				LotID:       d.LotID,
				MovedAt:     now,
				CreatedBy:   userID,
			}); err != nil {
				return err
			}
		}
		return r.Inventories.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CloseInventoryResponse{
		Status: inv.Status,
		Delta:  inv.Delta,
		Report: varianceReport(inv),
	}, nil
}

// GetByID obtiene un ciclo.
func (uc *LifecycleUseCase) GetByID(ctx context.Context, inventoryID string) (*dto.InventoryResponse, error) {
	var inv *entity.Inventory
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		inv, err = r.Inventories.GetByID(ctx, inventoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToInventoryResponse(inv), nil
}

// List lista ciclos de la empresa ligada.
func (uc *LifecycleUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.InventoryResponse, error) {
	page.Normalize()
	var list []*entity.Inventory
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		list, err = r.Inventories.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.ToInventoryResponse(inv))
	}
	return out, nil
}

func (uc *LifecycleUseCase) transition(ctx context.Context, inventoryID string, apply func(inv *entity.Inventory) error) (*dto.InventoryResponse, error) {
	if inventoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Inventory
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		inv, err = r.Inventories.GetForUpdate(ctx, inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := apply(inv); err != nil {
			return err
		}
		return r.Inventories.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(inv), nil
}

// varianceReport arma el reporte CSV de variaciones (una línea por línea del
// alcance) y lo codifica en base64 para descarga directa.
func varianceReport(inv *entity.Inventory) string {
	var b strings.Builder
	b.WriteString("item_id,warehouse_id,lot_id,expected,counted,difference\n")
	for _, d := range inv.Differences {
		lot := ""
		if d.LotID != nil {
			lot = *d.LotID
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s\n",
			d.ItemID, d.WarehouseID, lot,
			d.Expected.String(), d.Counted.String(), d.Difference.String())
	}
	return base64.StdEncoding.EncodeToString([]byte(b.String()))
}
