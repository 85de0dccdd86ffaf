package animals

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adota-pet/internal/domain/authz"
	"adota-pet/internal/middleware"
	"adota-pet/internal/ports/upload"
)

const (
	maxFotosPorUpload = 10
	maxUploadBytes    = 32 << 20 // limite do form multipart inteiro
)

// Extensões de imagem aceitas (original: jpg|jpeg|png|gif).
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func RegisterRoutes(r chi.Router, svc *Service, store upload.FileStore) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc, store))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc))
		ar.Post("/{animalID}/photos", addPhotosHandler(svc, store))
	})
}

type fotoResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Legenda string `json:"legenda,omitempty"`
}

type animalResponse struct {
	ID         string         `json:"id"`
	ProtetorID string         `json:"protetorId"`
	Nome       string         `json:"nome"`
	Especie    string         `json:"especie"`
	Raca       string         `json:"raca,omitempty"`
	Idade      int            `json:"idade"`
	Porte      string         `json:"porte"`
	Descricao  string         `json:"descricao"`
	Status     string         `json:"status"`
	Fotos      []fotoResponse `json:"fotos"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type updateAnimalRequest struct {
	// Ponteiros para PATCH real: nil = não tocar.
	Nome      *string `json:"nome"`
	Especie   *string `json:"especie"`
	Raca      *string `json:"raca"`
	Idade     *int    `json:"idade"`
	Porte     *string `json:"porte"`
	Descricao *string `json:"descricao"`
}

// createAnimalHandler godoc
// @Summary Cadastrar animal
// @Description Cria um animal com até 10 fotos (multipart, campo `fotos`). Requer papel PROTETOR ou ADMIN.
// @Tags animals
// @Accept mpfd
// @Produce json
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "dados inválidos / arquivo não suportado"
// @Failure 401 {string} string "não autenticado"
// @Failure 403 {string} string "papel insuficiente"
// @Router /animals [post]
func createAnimalHandler(svc *Service, store upload.FileStore) http.HandlerFunc {
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

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "multipart inválido", http.StatusBadRequest)
			return
		}

		idade := 0
		if v := strings.TrimSpace(r.FormValue("idade")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "idade deve ser um inteiro", http.StatusBadRequest)
				return
			}
			idade = n
		}

		fotos, err := saveFotos(r, store)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), actor.ID, CreateInput{
			Nome:      r.FormValue("nome"),
			Especie:   strings.ToUpper(strings.TrimSpace(r.FormValue("especie"))),
			Raca:      r.FormValue("raca"),
			Idade:     idade,
			Porte:     strings.ToUpper(strings.TrimSpace(r.FormValue("porte"))),
			Descricao: r.FormValue("descricao"),
		}, fotos)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Catálogo público
// @Description Lista somente animais com status DISPONIVEL.
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "erro interno", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	// Público e sem filtro de status: a página de detalhe vê qualquer animal.
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}

		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json inválido", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), actor, UpdateInput{
			Nome:      req.Nome,
			Especie:   req.Especie,
			Raca:      req.Raca,
			Idade:     req.Idade,
			Porte:     req.Porte,
			Descricao: req.Descricao,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID"), actor); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addPhotosHandler godoc
// @Summary Anexar fotos
// @Description Anexa até 10 fotos a um animal existente. Dono ou ADMIN.
// @Tags animals
// @Accept mpfd
// @Produce json
// @Success 200 {object} animalResponse
// @Failure 403 {string} string "sem permissão"
// @Failure 404 {string} string "animal não encontrado"
// @Router /animals/{animalID}/photos [post]
func addPhotosHandler(svc *Service, store upload.FileStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actingUser(r)
		if !ok {
			http.Error(w, "não autenticado", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "multipart inválido", http.StatusBadRequest)
			return
		}

		fotos, err := saveFotos(r, store)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.AddFotos(r.Context(), chi.URLParam(r, "animalID"), actor, fotos)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// saveFotos valida e grava os arquivos do campo `fotos`, devolvendo as URLs.
// A legenda, quando vem, chega no campo `legenda` (aplicada a todas).
func saveFotos(r *http.Request, store upload.FileStore) ([]FotoInput, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File["fotos"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxFotosPorUpload {
		return nil, fmt.Errorf("máximo de %d fotos por envio", maxFotosPorUpload)
	}

	legenda := r.FormValue("legenda")
	out := make([]FotoInput, 0, len(files))
	for _, fh := range files {
		url, err := saveFoto(r, store, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, FotoInput{URL: url, Legenda: legenda})
	}
	return out, nil
}

func saveFoto(r *http.Request, store upload.FileStore, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("apenas arquivos de imagem são permitidos (jpg, jpeg, png, gif)")
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("falha ao ler arquivo enviado")
	}
	defer f.Close()

	return store.Save(r.Context(), uniqueName(ext), f)
}

// uniqueName segue o formato do serviço original: {timestamp}-{aleatório}{ext}.
func uniqueName(ext string) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(b), ext)
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
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNaoAutorizado):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}

func toAnimalResponse(a Animal) animalResponse {
	fotos := make([]fotoResponse, 0, len(a.Fotos))
	for _, f := range a.Fotos {
		fotos = append(fotos, fotoResponse{ID: f.ID, URL: f.URL, Legenda: f.Legenda})
	}
	return animalResponse{
		ID:         a.ID,
		ProtetorID: a.ProtetorID,
		Nome:       a.Nome,
		Especie:    string(a.Especie),
		Raca:       a.Raca,
		Idade:      a.Idade,
		Porte:      string(a.Porte),
		Descricao:  a.Descricao,
		Status:     string(a.Status),
		Fotos:      fotos,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
