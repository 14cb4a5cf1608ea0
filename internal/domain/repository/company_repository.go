package repository

import (
	"context"

	"github.com/tu-usuario/warehouse-pro/internal/domain/entity"
)

// CompanyRepository puerto de persistencia de empresas. Las empresas son la
// única tabla sin RLS por empresa: el registro y el login ocurren antes de
// que exista un contexto ligado.
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
}
