package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adota-pet/internal/domain/authz"
	"adota-pet/internal/middleware"
	"adota-pet/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, issuer))
		ar.Post("/login", loginHandler(svc, issuer))
		ar.Get("/me", meHandler(svc))
	})
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

// registerHandler godoc
// @Summary Registrar usuário
// @Description Cria uma conta INTERESSADO ou PROTETOR e devolve o token de acesso.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Dados de cadastro"
// @Success 201 {object} authResponse
// @Failure 400 {string} string "dados inválidos / email já cadastrado"
// @Router /auth/register [post]
func registerHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json inválido", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Nome:  req.Nome,
			Email: req.Email,
			Senha: req.Senha,
			Role:  authz.Role(strings.ToUpper(strings.TrimSpace(req.Role))),
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrEmailEmUso):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "erro interno", http.StatusInternalServerError)
			}
			return
		}

		token, err := issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email, Role: string(u.Role)})
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{AccessToken: token, User: toUserResponse(u)})
	}
}

// loginHandler godoc
// @Summary Login
// @Description Valida credenciais e devolve o token de acesso.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciais"
// @Success 200 {object} authResponse
// @Failure 401 {string} string "email ou senha inválidos"
// @Router /auth/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json inválido", http.StatusBadRequest)
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Senha)
		if err != nil {
			if errors.Is(err, ErrCredenciaisInvalidas) {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		token, err := issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email, Role: string(u.Role)})
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, authResponse{AccessToken: token, User: toUserResponse(u)})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// writeJSON duplicado de propósito entre os módulos de handler,
// igual ao resto do projeto: cedo demais para extrair helper comum.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
