package store

import "errors"

// Errores comunes del installation store.
var (
	// ErrNotFound indica que no hay instalación para esa clave.
	ErrNotFound = errors.New("installation not found")

	// ErrMissingIdentity indica que no se pudo resolver team id ni enterprise id.
	ErrMissingIdentity = errors.New("missing team or enterprise id")
)

// IsNotFound helper para verificar si el error es por instalación ausente.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMissingIdentity helper para verificar si falta la identidad del workspace.
func IsMissingIdentity(err error) bool {
	return errors.Is(err, ErrMissingIdentity)
}
