package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-pro/internal/application/dto"
	"github.com/tu-usuario/warehouse-pro/internal/domain"
	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
	"github.com/tu-usuario/warehouse-pro/internal/domain/repository"
)

// DocumentUseCase alta y consulta de documentos. La confirmación (que escribe
// al ledger) vive aparte en ConfirmDocumentUseCase.
type DocumentUseCase struct {
	runner SessionRunner
	now    func() time.Time
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(runner SessionRunner) *DocumentUseCase {
	return &DocumentUseCase{runner: runner, now: time.Now}
}

// Create crea un documento en borrador.
func (uc *DocumentUseCase) Create(ctx context.Context, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if in.Type == "" {
		return nil, domain.ErrInvalidInput
	}
	doc := &entity.Document{
		ID:        uuid.New().String(),
		Type:      in.Type,
		Status:    entity.DocumentStatusDraft,
		Causal:    in.Causal,
		Lines:     in.Lines,
		CreatedAt: uc.now(),
		CreatedBy: userID,
	}
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		return r.Documents.Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToDocumentResponse(doc), nil
}

// Cancel anula un documento en borrador. Un documento confirmado es inmutable
// y no puede anularse.
func (uc *DocumentUseCase) Cancel(ctx context.Context, documentID string) (*dto.DocumentResponse, error) {
	if documentID == "" {
		return nil, domain.ErrInvalidInput
	}
	var doc *entity.Document
	err := uc.runner.Run(ctx, func(r RepoSet) error {
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
		if err := r.Documents.SetStatus(ctx, documentID, entity.DocumentStatusCancelled); err != nil {
			return err
		}
		doc.Status = entity.DocumentStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToDocumentResponse(doc), nil
}

// GetByID obtiene un documento con los movimientos que escribió (si está
// confirmado).
func (uc *DocumentUseCase) GetByID(ctx context.Context, documentID string) (*dto.DocumentResponse, []*dto.MovementResponse, error) {
	var doc *entity.Document
	var movs []*entity.Movement
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		doc, err = r.Documents.GetByID(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status == entity.DocumentStatusConfirmed {
			movs, err = r.Movements.ListByDocument(ctx, documentID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.ToMovementResponse(m))
	}
	return dto.ToDocumentResponse(doc), out, nil
}

// List lista documentos de la empresa ligada.
func (uc *DocumentUseCase) List(ctx context.Context, f repository.DocumentFilter) ([]*dto.DocumentResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	var docs []*entity.Document
	err := uc.runner.Run(ctx, func(r RepoSet) error {
		var err error
		docs, err = r.Documents.List(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.ToDocumentResponse(d))
	}
	return out, nil
}
