// Package store define el contrato de persistencia de instalaciones: un
// documento por workspace, clave = team id o enterprise id.
package store

import (
	"context"

	"github.com/dropDatabas3/crewmate/internal/install"
)

// Query selecciona una instalación. EnterpriseID tiene prioridad sobre TeamID
// (misma resolución de clave que el upsert).
type Query struct {
	TeamID       string
	EnterpriseID string
}

// Key resuelve la clave de storage. ok=false si no hay ningún id.
func (q Query) Key() (string, bool) {
	if q.EnterpriseID != "" {
		return q.EnterpriseID, true
	}
	if q.TeamID != "" {
		return q.TeamID, true
	}
	return "", false
}

// InstallationStore persiste grants de instalación por workspace.
//
// Contrato:
//   - StoreInstallation: upsert last-write-wins. ErrMissingIdentity si el
//     registro no resuelve clave.
//   - FetchInstallation: ErrNotFound si no existe; la ausencia NUNCA se trata
//     como instalación en blanco.
//   - DeleteInstallation: idempotente; borrar una clave ausente no es error.
type InstallationStore interface {
	StoreInstallation(ctx context.Context, inst *install.Installation) error
	FetchInstallation(ctx context.Context, q Query) (*install.Installation, error)
	DeleteInstallation(ctx context.Context, q Query) error

	// Close libera conexiones del backend.
	Close() error
}
