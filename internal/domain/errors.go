package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrBusinessNotFound     = errors.New("el vendedor no tiene un negocio registrado")
	ErrRelationshipNotFound = errors.New("no existe relación con el cliente")
	ErrNoteNotFound         = errors.New("nota no encontrada")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInvalidSegment       = errors.New("segmento inválido")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrAlreadyIngested      = errors.New("la reserva ya fue procesada")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
)

// IsNotFound agrupa los errores que la capa HTTP traduce a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrBusinessNotFound) ||
		errors.Is(err, ErrRelationshipNotFound) ||
		errors.Is(err, ErrNoteNotFound)
}
