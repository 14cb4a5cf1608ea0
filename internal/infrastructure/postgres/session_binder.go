package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/warehouse-pro/pkg/companyctx"
	"github.com/tu-usuario/warehouse-pro/pkg/logger"
)

// SessionSetting nombre de la variable de sesión que las políticas RLS leen
// para filtrar por empresa. Sin valor, las políticas no devuelven filas:
// jamás se resuelve a una empresa por defecto.
const SessionSetting = "app.current_company_id"

// SessionBinder liga la empresa del contexto a una conexión física del pool
// durante una unidad de trabajo.
//
// Es el único código que escribe app.current_company_id. El par set/clear es
// inquebrantable: la limpieza corre sobre un contexto sin cancelación y, si
// aun así falla, la conexión se destruye en lugar de volver al pool, para que
// ningún prestatario herede la identidad de otra empresa.
type SessionBinder struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewSessionBinder construye el binder sobre el pool compartido.
func NewSessionBinder(pool *pgxpool.Pool, log *logger.Logger) *SessionBinder {
	return &SessionBinder{pool: pool, log: log}
}

// WithCompany toma una conexión del pool, fija la variable de sesión con la
// empresa ligada al contexto y ejecuta fn con esa conexión en exclusiva.
//
// Retorna companyctx.ErrNotBound (envuelto) si el contexto no trae empresa:
// ese es un defecto del llamador y se aborta antes de tocar el pool.
func (b *SessionBinder) WithCompany(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	companyID, err := companyctx.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("session binder: %w", err)
	}

	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT set_config($1, $2, false)", SessionSetting, companyID); err != nil {
		// La variable nunca llegó a fijarse: la conexión es segura de devolver.
		conn.Release()
		return fmt.Errorf("set %s: %w", SessionSetting, err)
	}

	// La limpieza no es salteable: corre aunque ctx esté cancelado, fn haya
	// fallado o fn haya hecho panic (el defer sobrevive al desenrollado).
	// Una conexión ligada que vuelve al pool es una fuga de identidad.
	defer func() {
		resetCtx := context.WithoutCancel(ctx)
		if _, rerr := conn.Exec(resetCtx, "SELECT set_config($1, '', false)", SessionSetting); rerr != nil {
			b.log.Error().
				Err(rerr).
				Str("company_id", companyID).
				Msg("no se pudo limpiar la variable de sesión; descartando la conexión del pool")
			// Cerrar la conexión subyacente hace que el pool la destruya al liberar.
			_ = conn.Conn().Close(resetCtx)
		}
		conn.Release()
	}()

	return fn(conn)
}
