package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los
// traducen a códigos de estado; los casos de uso los retornan sin envolver
// para que errors.Is funcione en toda la cadena.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrInventoryFrozen bloquea confirmaciones mientras exista un inventario
	// físico congelado para la empresa.
	ErrInventoryFrozen = errors.New("inventario físico congelado")

	// ErrLotUnavailable el lote referenciado está vencido, bloqueado o dado de baja.
	ErrLotUnavailable = errors.New("lote vencido o bloqueado")

	// ErrApprovalQuorum el cierre de inventario requiere al menos dos aprobaciones distintas.
	ErrApprovalQuorum = errors.New("aprobaciones insuficientes para cerrar")

	// ErrDuplicateApproval el mismo usuario no puede aprobar dos veces.
	ErrDuplicateApproval = errors.New("aprobación duplicada del mismo usuario")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
