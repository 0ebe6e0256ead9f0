package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores específicos del POS. Envuelven a los base para que errors.Is siga funcionando en la capa HTTP.
var (
	ErrInvalidTable          = fmt.Errorf("%w: número de mesa inválido", ErrInvalidInput)
	ErrTableMismatch         = fmt.Errorf("%w: el número de mesa confirmado no coincide", ErrInvalidInput)
	ErrTableOccupied         = fmt.Errorf("%w: la mesa seleccionada está ocupada", ErrConflict)
	ErrOrderNotPending       = fmt.Errorf("%w: la orden solo se puede modificar en estado pending", ErrConflict)
	ErrOrderVoided           = fmt.Errorf("%w: la orden está anulada", ErrConflict)
	ErrInvalidVoidCredential = fmt.Errorf("%w: contraseña de anulación inválida", ErrUnauthorized)
	ErrItemHasBatches        = fmt.Errorf("%w: el artículo tiene lotes de stock", ErrConflict)
	ErrItemInOrders          = fmt.Errorf("%w: el artículo está referenciado en órdenes", ErrConflict)
)
