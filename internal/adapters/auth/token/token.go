// Package token implementa emissão e verificação de JWT (HS256) para as
// portas auth.TokenIssuer e auth.AuthVerifier. O serviço assina os próprios
// tokens; não há IdP externo.
package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"adota-pet/internal/ports/auth"
)

var (
	ErrTokenInvalido = errors.New("token inválido")
)

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue assina as claims com exp = now + ttl.
func (m *Manager) Issue(claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("claims sem user id")
	}

	now := m.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	})
	return tok.SignedString(m.secret)
}

// Verify valida assinatura e expiração e devolve as claims.
func (m *Manager) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tok.Valid {
		return auth.Claims{}, ErrTokenInvalido
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrTokenInvalido
	}

	sub, _ := mc["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrTokenInvalido
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)

	return auth.Claims{UserID: sub, Email: email, Role: role}, nil
}
