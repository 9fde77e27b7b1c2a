// Package statetoken issues and verifies the anti-CSRF `state` parameter of
// the OAuth install flow. The state is a signed JWT (HS256, short TTL) whose
// jti is parked in the cache while the flow is pending; verification consumes
// the jti, so a state can be redeemed exactly once.
package statetoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/crewmate/internal/cache"
)

const cachePrefix = "oauth:state:"

var (
	// ErrInvalid covers bad signature, malformed token and expiry.
	ErrInvalid = errors.New("state token invalid or expired")

	// ErrConsumed indica replay: el jti ya fue canjeado (o nunca se emitió acá).
	ErrConsumed = errors.New("state token already used or unknown")
)

// Issuer firma states y mantiene el registro de flows pendientes.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	cache  cache.Cache
}

func New(secret string, ttl time.Duration, c cache.Cache) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, cache: c}
}

// Issue mints a new single-use state scoped to one pending install flow.
func (i *Issuer) Issue() (string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := jwt.RegisteredClaims{
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", err
	}

	// El marker vive lo mismo que el token; expirado el TTL, ambos mueren.
	i.cache.Set(cachePrefix+jti, []byte("1"), i.ttl)
	return tok, nil
}

// VerifyAndConsume validates the signature and expiry, then redeems the jti.
// A second call with the same state fails with ErrConsumed.
func (i *Issuer) VerifyAndConsume(state string) error {
	if state == "" {
		return ErrInvalid
	}

	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(state, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid || claims.ID == "" {
		return ErrInvalid
	}

	key := cachePrefix + claims.ID
	if _, ok := i.cache.Get(key); !ok {
		return ErrConsumed
	}
	i.cache.Delete(key)
	return nil
}
