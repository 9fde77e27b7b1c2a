// Package memory implementa cache.Cache sobre un mapa in-process.
// Sirve para desarrollo y tests; en producción el equivalente es redis.
package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dropDatabas3/crewmate/internal/cache"
)

// janitorInterval controla cada cuánto se barren las entradas vencidas.
// Los nonces de state OAuth viven minutos, con un barrido por minuto alcanza.
const janitorInterval = time.Minute

type Store struct{ c *gocache.Cache }

// New crea un cache con el TTL por defecto indicado. Un Set con ttl
// explícito pisa el default entrada por entrada.
func New(defaultTTL time.Duration) cache.Cache {
	return &Store{c: gocache.New(defaultTTL, janitorInterval)}
}

func (s *Store) Get(k string) ([]byte, bool) {
	v, ok := s.c.Get(k)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *Store) Set(k string, v []byte, ttl time.Duration) {
	s.c.Set(k, v, ttl)
}

// Delete es idempotente: borrar una clave ausente no es error.
func (s *Store) Delete(k string) { s.c.Delete(k) }
