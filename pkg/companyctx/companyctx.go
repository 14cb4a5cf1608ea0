// Package companyctx transporta la identidad de empresa (tenant) de una
// unidad de trabajo a través de context.Context, de forma explícita.
//
// Ninguna función lee la empresa de estado global: quien necesita emitir
// queries recibe un contexto ya ligado con With/Run. La ausencia de empresa
// ligada es un defecto de programación (ErrNotBound), nunca se resuelve a una
// empresa por defecto.
package companyctx

import (
	"context"
	"errors"
)

// ctxKey clave privada para el valor en el contexto.
type ctxKey struct{}

// ErrNotBound indica que una operación de datos se intentó sin empresa ligada
// al contexto. Es un error de programación: se aborta la unidad de trabajo y
// jamás se asume una empresa por defecto.
var ErrNotBound = errors.New("companyctx: ninguna empresa ligada al contexto")

// With devuelve un contexto con la empresa ligada.
func With(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, companyID)
}

// Run ejecuta fn con la empresa ligada al contexto durante esa llamada.
func Run(ctx context.Context, companyID string, fn func(ctx context.Context) error) error {
	return fn(With(ctx, companyID))
}

// FromContext devuelve la empresa ligada o ErrNotBound si no hay ninguna.
func FromContext(ctx context.Context) (string, error) {
	v, ok := ctx.Value(ctxKey{}).(string)
	if !ok || v == "" {
		return "", ErrNotBound
	}
	return v, nil
}

// IsBound informa si el contexto tiene una empresa ligada.
func IsBound(ctx context.Context) bool {
	_, err := FromContext(ctx)
	return err == nil
}
