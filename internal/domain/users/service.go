package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"adota-pet/internal/domain/authz"
)

var (
	ErrInvalidInput         = errors.New("dados inválidos")
	ErrNotFound             = errors.New("usuário não encontrado")
	ErrEmailEmUso           = errors.New("email já cadastrado")
	ErrCredenciaisInvalidas = errors.New("email ou senha inválidos")
)

const senhaMinLen = 6

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Nome  string
	Email string
	Senha string
	Role  authz.Role
}

// Register cria a conta com senha em bcrypt. ADMIN não se auto-registra:
// só INTERESSADO e PROTETOR passam por aqui (admins são semeados no banco).
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	nome := strings.TrimSpace(in.Nome)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if nome == "" || email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidInput
	}
	if len(in.Senha) < senhaMinLen {
		return User{}, ErrInvalidInput
	}
	if in.Role != authz.RoleInteressado && in.Role != authz.RoleProtetor {
		return User{}, ErrInvalidInput
	}

	// Checagem de unicidade read-then-insert; o índice único de email
	// no Postgres fecha a corrida.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailEmUso
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		Nome:      nome,
		Email:     email,
		SenhaHash: string(hash),
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login valida as credenciais. A mensagem de erro é única de propósito:
// não diferenciamos "email inexistente" de "senha errada".
func (s *Service) Login(ctx context.Context, email, senha string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || senha == "" {
		return User{}, ErrCredenciaisInvalidas
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrCredenciaisInvalidas
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte(senha)); err != nil {
		return User{}, ErrCredenciaisInvalidas
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}
