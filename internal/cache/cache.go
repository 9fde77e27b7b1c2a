// Package cache provee una abstracción KV chica con TTL.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para producción)
//
// El único consumidor hoy es el store de nonces del state OAuth (one-shot).
package cache

import "time"

// Cache define las operaciones mínimas que necesita el flujo OAuth.
type Cache interface {
	Get(k string) ([]byte, bool)
	Set(k string, v []byte, ttl time.Duration)
	Delete(k string)
}
