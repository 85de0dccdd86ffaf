package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"adota-pet/internal/ports/auth"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("segredo-de-teste", time.Hour)

	in := auth.Claims{UserID: "user-1", Email: "maria@example.com", Role: "PROTETOR"}
	tok, err := m.Issue(in)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := m.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got != in {
		t.Fatalf("claims mismatch: %#v vs %#v", got, in)
	}
}

func TestManager_Issue_SemUserID(t *testing.T) {
	m := NewManager("segredo-de-teste", time.Hour)
	if _, err := m.Issue(auth.Claims{Email: "x@y.com"}); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestManager_Verify_SegredoErrado(t *testing.T) {
	issuer := NewManager("segredo-a", time.Hour)
	verifier := NewManager("segredo-b", time.Hour)

	tok, err := issuer.Issue(auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), tok); !errors.Is(err, ErrTokenInvalido) {
		t.Fatalf("expected ErrTokenInvalido, got %v", err)
	}
}

func TestManager_Verify_Expirado(t *testing.T) {
	m := NewManager("segredo-de-teste", time.Hour)

	issuedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	tok, err := m.Issue(auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// dentro do prazo
	m.now = func() time.Time { return issuedAt.Add(30 * time.Minute) }
	if _, err := m.Verify(context.Background(), tok); err != nil {
		t.Fatalf("Verify before expiry error: %v", err)
	}

	// depois do prazo
	m.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := m.Verify(context.Background(), tok); !errors.Is(err, ErrTokenInvalido) {
		t.Fatalf("expected ErrTokenInvalido after expiry, got %v", err)
	}
}

func TestManager_Verify_Lixo(t *testing.T) {
	m := NewManager("segredo-de-teste", time.Hour)
	if _, err := m.Verify(context.Background(), "nem-de-longe-um-jwt"); !errors.Is(err, ErrTokenInvalido) {
		t.Fatalf("expected ErrTokenInvalido, got %v", err)
	}
}
