package solicitacoes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adota-pet/internal/domain/animals"
	"adota-pet/internal/domain/authz"
	"adota-pet/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, animaisSvc *animals.Service) {
	r.Route("/solicitacoes", func(sr chi.Router) {
		sr.Post("/", criarHandler(svc, animaisSvc))
		sr.Get("/minhas", minhasHandler(svc, animaisSvc))
		sr.Get("/recebidas", recebidasHandler(svc, animaisSvc))
		sr.Get("/", listarTodasHandler(svc, animaisSvc))

		sr.Patch("/{solicitacaoID}/status", atualizarStatusHandler(svc, animaisSvc))
		sr.Patch("/{solicitacaoID}/cancelar", cancelarHandler(svc, animaisSvc))
		sr.Patch("/{solicitacaoID}/confirmar-apadrinhamento", confirmarHandler(svc, animaisSvc))
		sr.Patch("/{solicitacaoID}/negar-apadrinhamento", negarHandler(svc, animaisSvc))
	})
}

type criarRequest struct {
	Tipo     string `json:"tipo"`
	AnimalID string `json:"animalId"`
	Mensagem string `json:"mensagem"`
}

type atualizarStatusRequest struct {
	Status string `json:"status"`
}

type animalResumo struct {
	ID      string `json:"id"`
	Nome    string `json:"nome"`
	Status  string `json:"status"`
	FotoURL string `json:"fotoUrl,omitempty"`
}

type solicitacaoResponse struct {
	ID            string        `json:"id"`
	Tipo          string        `json:"tipo"`
	Status        string        `json:"status"`
	Mensagem      string        `json:"mensagem,omitempty"`
	AnimalID      string        `json:"animalId"`
	InteressadoID string        `json:"interessadoId"`
	Animal        *animalResumo `json:"animal,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// criarHandler godoc
// @Summary Criar solicitação
// @Description Abre uma solicitação de adoção ou apadrinhamento para um animal DISPONIVEL. Requer papel INTERESSADO.
// @Tags solicitacoes
// @Accept json
// @Produce json
// @Param payload body criarRequest true "tipo: ADOCAO ou APADRINHAMENTO"
// @Success 201 {object} solicitacaoResponse
// @Failure 400 {string} string "indisponível / animal próprio / pendente duplicada"
// @Failure 404 {string} string "animal não encontrado"
// @Router /solicitacoes [post]
func criarHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleInteressado) {
			http.Error(w, "apenas interessados criam solicitações", http.StatusForbidden)
			return
		}

		var req criarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json inválido", http.StatusBadRequest)
			return
		}

		sol, err := svc.Criar(r.Context(), actor, CriarInput{
			Tipo:     Tipo(strings.ToUpper(strings.TrimSpace(req.Tipo))),
			AnimalID: req.AnimalID,
			Mensagem: req.Mensagem,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(r.Context(), animaisSvc, sol))
	}
}

func minhasHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleInteressado) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		items, err := svc.MinhasSolicitacoes(r.Context(), actor.ID)
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r.Context(), animaisSvc, items))
	}
}

func recebidasHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleProtetor) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		items, err := svc.Recebidas(r.Context(), actor.ID)
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r.Context(), animaisSvc, items))
	}
}

func listarTodasHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleAdmin) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		items, err := svc.ListarTodas(r.Context())
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(r.Context(), animaisSvc, items))
	}
}

// atualizarStatusHandler godoc
// @Summary Atualizar status (admin)
// @Description Sobrescreve o status da solicitação. Em APROVADA, o animal vira ADOTADO (adoção) ou APADRINHADO (apadrinhamento).
// @Tags solicitacoes
// @Accept json
// @Produce json
// @Param solicitacaoID path string true "ID da solicitação"
// @Param payload body atualizarStatusRequest true "novo status"
// @Success 200 {object} solicitacaoResponse
// @Failure 403 {string} string "papel insuficiente"
// @Failure 404 {string} string "solicitação não encontrada"
// @Router /solicitacoes/{solicitacaoID}/status [patch]
func atualizarStatusHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleAdmin) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		var req atualizarStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json inválido", http.StatusBadRequest)
			return
		}

		sol, err := svc.AtualizarStatus(r.Context(), chi.URLParam(r, "solicitacaoID"),
			Status(strings.ToUpper(strings.TrimSpace(req.Status))))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(r.Context(), animaisSvc, sol))
	}
}

func cancelarHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleInteressado) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		sol, err := svc.Cancelar(r.Context(), chi.URLParam(r, "solicitacaoID"), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(r.Context(), animaisSvc, sol))
	}
}

func confirmarHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleProtetor, authz.RoleAdmin) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		sol, err := svc.ConfirmarApadrinhamento(r.Context(), chi.URLParam(r, "solicitacaoID"), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(r.Context(), animaisSvc, sol))
	}
}

func negarHandler(svc *Service, animaisSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		if !authz.HasRole(actor, authz.RoleProtetor, authz.RoleAdmin) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}

		sol, err := svc.NegarApadrinhamento(r.Context(), chi.URLParam(r, "solicitacaoID"), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(r.Context(), animaisSvc, sol))
	}
}

func actingUser(r *http.Request) (authz.ActingUser, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return authz.ActingUser{}, false
	}
	return authz.ActingUser{ID: claims.UserID, Role: authz.Role(claims.Role)}, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, animals.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNaoAutorizado):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrAnimalIndisponivel),
		errors.Is(err, ErrAnimalProprio),
		errors.Is(err, ErrSolicitacaoDuplicada),
		errors.Is(err, ErrStatusInvalido),
		errors.Is(err, ErrTipoInvalido):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}

func toResponses(ctx context.Context, animaisSvc *animals.Service, items []Solicitacao) []solicitacaoResponse {
	out := make([]solicitacaoResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toResponse(ctx, animaisSvc, s))
	}
	return out
}

func toResponse(ctx context.Context, animaisSvc *animals.Service, s Solicitacao) solicitacaoResponse {
	resp := solicitacaoResponse{
		ID:            s.ID,
		Tipo:          string(s.Tipo),
		Status:        string(s.Status),
		Mensagem:      s.Mensagem,
		AnimalID:      s.AnimalID,
		InteressadoID: s.InteressadoID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}

	// Resumo do animal para a UI; solicitação órfã (animal deletado) tolera.
	if a, err := animaisSvc.GetByID(ctx, s.AnimalID); err == nil {
		resumo := &animalResumo{ID: a.ID, Nome: a.Nome, Status: string(a.Status)}
		if len(a.Fotos) > 0 {
			resumo.FotoURL = a.Fotos[0].URL
		}
		resp.Animal = resumo
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
