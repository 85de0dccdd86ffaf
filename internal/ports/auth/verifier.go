package auth

import "context"

// AuthVerifier verifica um token e devolve claims ou erro.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite um token assinado para as claims informadas.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
}
