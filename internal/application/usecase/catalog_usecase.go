package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/application/inventory"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
)

// CatalogUseCase altas y consultas de artículos y bodegas. Opera siempre
// sobre la empresa ligada al contexto, vía el runner de sesión.
type CatalogUseCase struct {
	runner inventory.SessionRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(runner inventory.SessionRunner) *CatalogUseCase {
	return &CatalogUseCase{runner: runner}
}

// CreateItem crea un artículo. SKU duplicado en la empresa devuelve
// domain.ErrDuplicate.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	companyID, err := companyctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		SKU:           in.SKU,
		Name:          in.Name,
		LotTracked:    in.LotTracked,
		SerialTracked: in.SerialTracked,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.runner.Run(ctx, func(r inventory.RepoSet) error {
		return r.Items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// GetItem obtiene un artículo por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	var item *entity.Item
	err := uc.runner.Run(ctx, func(r inventory.RepoSet) error {
		var err error
		item, err = r.Items.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToItemResponse(item), nil
}

// ListItems lista artículos de la empresa ligada.
func (uc *CatalogUseCase) ListItems(ctx context.Context, page dto.PageRequest) ([]*dto.ItemResponse, error) {
	page.Normalize()
	var items []*entity.Item
	err := uc.runner.Run(ctx, func(r inventory.RepoSet) error {
		var err error
		items, err = r.Items.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, dto.ToItemResponse(i))
	}
	return out, nil
}

// CreateWarehouse crea una bodega.
func (uc *CatalogUseCase) CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	companyID, err := companyctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.runner.Run(ctx, func(r inventory.RepoSet) error {
		return r.Warehouses.Create(ctx, wh)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToWarehouseResponse(wh), nil
}

// ListWarehouses lista bodegas de la empresa ligada.
func (uc *CatalogUseCase) ListWarehouses(ctx context.Context, page dto.PageRequest) ([]*dto.WarehouseResponse, error) {
	page.Normalize()
	var whs []*entity.Warehouse
	err := uc.runner.Run(ctx, func(r inventory.RepoSet) error {
		var err error
		whs, err = r.Warehouses.List(ctx, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WarehouseResponse, 0, len(whs))
	for _, w := range whs {
		out = append(out, dto.ToWarehouseResponse(w))
	}
	return out, nil
}
