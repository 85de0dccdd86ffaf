package admin

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"adota-pet/internal/domain/authz"
	"adota-pet/internal/middleware"
)

func RegisterRoutes(r chi.Router, repo Repository) {
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(requireAdmin)
		ar.Get("/dashboard", dashboardHandler(repo))
		ar.Get("/users", listUsersHandler(repo))
		ar.Get("/animals", listAnimalsHandler(repo))
		ar.Get("/solicitacoes", listSolicitacoesHandler(repo))
	})
}

// requireAdmin corta cedo: todas as rotas daqui são exclusivas de ADMIN.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}
		actor := authz.ActingUser{ID: claims.UserID, Role: authz.Role(claims.Role)}
		if !authz.HasRole(actor, authz.RoleAdmin) {
			http.Error(w, "papel insuficiente", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// dashboardHandler godoc
// @Summary Contadores do dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} DashboardStats
// @Failure 403 {string} string "papel insuficiente"
// @Router /admin/dashboard [get]
func dashboardHandler(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := repo.DashboardStats(r.Context())
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func listUsersHandler(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := repo.ListUsers(r.Context())
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func listAnimalsHandler(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := repo.ListAnimals(r.Context())
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func listSolicitacoesHandler(repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := repo.ListSolicitacoes(r.Context())
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
