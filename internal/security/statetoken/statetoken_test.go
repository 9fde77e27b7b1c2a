package statetoken

import (
	"errors"
	"strings"
	"testing"
	"time"

	memcache "github.com/dropDatabas3/crewmate/internal/cache/memory"
)

func newIssuer(t *testing.T) *Issuer {
	t.Helper()
	return New("test-state-secret", 10*time.Minute, memcache.New(10*time.Minute))
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss := newIssuer(t)

	state, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}
	if state == "" {
		t.Fatal("empty state")
	}
	if err := iss.VerifyAndConsume(state); err != nil {
		t.Fatalf("VerifyAndConsume err: %v", err)
	}
}

func TestVerify_SingleUse(t *testing.T) {
	iss := newIssuer(t)

	state, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}
	if err := iss.VerifyAndConsume(state); err != nil {
		t.Fatalf("first redeem err: %v", err)
	}
	// replay: mismo state una segunda vez
	if err := iss.VerifyAndConsume(state); !errors.Is(err, ErrConsumed) {
		t.Fatalf("second redeem err = %v, want ErrConsumed", err)
	}
}

func TestVerify_RejectsTamper(t *testing.T) {
	iss := newIssuer(t)

	state, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	// corromper la firma (último segmento del JWT)
	parts := strings.Split(state, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format")
	}
	repl := "AAAA"
	if strings.HasPrefix(parts[2], repl) {
		repl = "BBBB"
	}
	tampered := parts[0] + "." + parts[1] + "." + repl + parts[2][4:]

	if err := iss.VerifyAndConsume(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestVerify_RejectsForeignSecret(t *testing.T) {
	other := New("another-secret", 10*time.Minute, memcache.New(10*time.Minute))
	state, err := other.Issue()
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}

	iss := newIssuer(t)
	if err := iss.VerifyAndConsume(state); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestVerify_RejectsEmptyAndGarbage(t *testing.T) {
	iss := newIssuer(t)

	if err := iss.VerifyAndConsume(""); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty: err = %v, want ErrInvalid", err)
	}
	if err := iss.VerifyAndConsume("not-a-jwt"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("garbage: err = %v, want ErrInvalid", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	iss := New("test-state-secret", -time.Minute, memcache.New(10*time.Minute))

	state, err := iss.Issue()
	if err != nil {
		t.Fatalf("Issue err: %v", err)
	}
	// TTL negativo: el exp ya pasó al momento de verificar
	if err := iss.VerifyAndConsume(state); !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}
