package users

import (
	"time"

	"adota-pet/internal/domain/authz"
)

// User representa uma conta da plataforma. SenhaHash nunca sai em resposta;
// a serialização fica nos structs de response do handler.
type User struct {
	ID        string
	Nome      string
	Email     string
	SenhaHash string
	Role      authz.Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
