// Package memory implements an in-process installation store for development
// and tests.
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/crewmate/internal/install"
	"github.com/dropDatabas3/crewmate/internal/store"
)

type Mem struct {
	mu   sync.RWMutex
	docs map[string]install.Installation
}

func New() *Mem {
	return &Mem{docs: make(map[string]install.Installation)}
}

func (m *Mem) StoreInstallation(_ context.Context, inst *install.Installation) error {
	key, ok := inst.Key()
	if !ok {
		return store.ErrMissingIdentity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = *inst
	return nil
}

func (m *Mem) FetchInstallation(_ context.Context, q store.Query) (*install.Installation, error) {
	key, ok := q.Key()
	if !ok {
		return nil, store.ErrMissingIdentity
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.docs[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := inst
	return &out, nil
}

func (m *Mem) DeleteInstallation(_ context.Context, q store.Query) error {
	key, ok := q.Key()
	if !ok {
		return store.ErrMissingIdentity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

func (m *Mem) Close() error { return nil }
