package companyctx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
)

// Sin empresa ligada, FromContext debe fallar con ErrNotBound: nunca se
// resuelve silenciosamente a una empresa por defecto.
func TestFromContext_SinEmpresa_RetornaErrNotBound(t *testing.T) {
	_, err := companyctx.FromContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, companyctx.ErrNotBound)
}

func TestFromContext_EmpresaVacia_RetornaErrNotBound(t *testing.T) {
	ctx := companyctx.With(context.Background(), "")
	_, err := companyctx.FromContext(ctx)
	assert.ErrorIs(t, err, companyctx.ErrNotBound)
}

func TestWith_LigaEmpresa(t *testing.T) {
	ctx := companyctx.With(context.Background(), "empresa-1")
	id, err := companyctx.FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "empresa-1", id)
	assert.True(t, companyctx.IsBound(ctx))
}

// Run liga la empresa solo durante la llamada; dos Run anidados con empresas
// distintas ven cada uno la suya (cadenas de llamada independientes).
func TestRun_EmpresasIndependientes(t *testing.T) {
	base := context.Background()

	var vista1, vista2 string
	err := companyctx.Run(base, "empresa-1", func(ctx context.Context) error {
		id, err := companyctx.FromContext(ctx)
		vista1 = id
		return err
	})
	require.NoError(t, err)

	err = companyctx.Run(base, "empresa-2", func(ctx context.Context) error {
		id, err := companyctx.FromContext(ctx)
		vista2 = id
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "empresa-1", vista1)
	assert.Equal(t, "empresa-2", vista2)
	assert.False(t, companyctx.IsBound(base), "el contexto base no debe quedar ligado")
}

// Una llamada con override explícito (superadmin) reemplaza la empresa solo
// en el contexto derivado.
func TestWith_OverrideExplicito(t *testing.T) {
	ctx := companyctx.With(context.Background(), "empresa-1")
	override := companyctx.With(ctx, "empresa-2")

	id, err := companyctx.FromContext(override)
	require.NoError(t, err)
	assert.Equal(t, "empresa-2", id)

	id, err = companyctx.FromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "empresa-1", id, "el contexto original conserva su empresa")
}
