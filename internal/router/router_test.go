package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adota-pet/internal/adapters/auth/token"
	"adota-pet/internal/adapters/upload/disk"
	"adota-pet/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := disk.NewStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("disk store: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // modo dev: X-Debug-User-ID / X-Debug-Role
		TokenIssuer:  token.NewManager("segredo-de-teste", time.Hour),
		FileStore:    store,
		UploadsDir:   store.Dir(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path, userID, role string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
		req.Header.Set("X-Debug-Role", role)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

// createAnimal envia o multipart de cadastro com uma foto png fake.
func createAnimal(t *testing.T, baseURL, protetorID, nome string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"nome":      nome,
		"especie":   "CAO",
		"raca":      "vira-lata",
		"idade":     "3",
		"porte":     "MEDIO",
		"descricao": "muito dócil",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	fw, err := mw.CreateFormFile("fotos", "perfil.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("png-fake")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, baseURL+"/animals", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Debug-User-ID", protetorID)
	req.Header.Set("X-Debug-Role", "PROTETOR")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating animal, got %d body=%s", resp.StatusCode, string(data))
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Fotos  []struct {
			URL string `json:"url"`
		} `json:"fotos"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal animal: %v body=%s", err, string(data))
	}
	if out.Status != "DISPONIVEL" {
		t.Fatalf("expected new animal DISPONIVEL, got %s", out.Status)
	}
	if len(out.Fotos) != 1 {
		t.Fatalf("expected 1 foto, got %d", len(out.Fotos))
	}
	return out.ID
}

func animalStatus(t *testing.T, baseURL, animalID string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/animals/"+animalID, "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get animal, got %d body=%s", st, string(body))
	}
	var out struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out.Status
}

func TestHTTP_EndToEnd_Apadrinhamento(t *testing.T) {
	ts := newTestServer(t)

	protetorID := "protetor-1"
	interessadoID := "interessado-1"

	animalID := createAnimal(t, ts.URL, protetorID, "Rex")

	// interessado abre o apadrinhamento
	st, body := doReq(t, ts.URL, "POST", "/solicitacoes", interessadoID, "INTERESSADO", map[string]any{
		"tipo":     "APADRINHAMENTO",
		"animalId": animalID,
		"mensagem": "posso ajudar mensalmente",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating solicitacao, got %d body=%s", st, string(body))
	}
	var sol struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &sol); err != nil {
		t.Fatalf("unmarshal solicitacao: %v", err)
	}
	if sol.Status != "PENDENTE" {
		t.Fatalf("expected PENDENTE, got %s", sol.Status)
	}

	// protetor vê a solicitação recebida
	{
		st, body := doReq(t, ts.URL, "GET", "/solicitacoes/recebidas", protetorID, "PROTETOR", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 recebidas, got %d body=%s", st, string(body))
		}
		var list []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &list); err != nil {
			t.Fatalf("unmarshal recebidas: %v", err)
		}
		if len(list) != 1 || list[0].ID != sol.ID {
			t.Fatalf("expected the solicitacao in recebidas, got %s", string(body))
		}
	}

	// outro protetor não confirma
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/solicitacoes/"+sol.ID+"/confirmar-apadrinhamento", "protetor-2", "PROTETOR", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for non-owner confirm, got %d", st)
		}
	}

	// o dono confirma
	{
		st, body := doReq(t, ts.URL, "PATCH", "/solicitacoes/"+sol.ID+"/confirmar-apadrinhamento", protetorID, "PROTETOR", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm, got %d body=%s", st, string(body))
		}
	}

	// confirmar apadrinhamento não tira o animal do catálogo
	if got := animalStatus(t, ts.URL, animalID); got != "DISPONIVEL" {
		t.Fatalf("expected animal still DISPONIVEL after sponsorship, got %s", got)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var list []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &list); err != nil {
			t.Fatalf("unmarshal list: %v", err)
		}
		if len(list) != 1 || list[0].ID != animalID {
			t.Fatalf("expected animal still listed, got %s", string(body))
		}
	}
}

func TestHTTP_EndToEnd_AdocaoAprovada(t *testing.T) {
	ts := newTestServer(t)

	protetorID := "protetor-1"
	interessadoID := "interessado-1"

	animalID := createAnimal(t, ts.URL, protetorID, "Mia")

	// o protetor não solicita o próprio animal
	{
		st, body := doReq(t, ts.URL, "POST", "/solicitacoes", protetorID, "INTERESSADO", map[string]any{
			"tipo":     "ADOCAO",
			"animalId": animalID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for own animal, got %d body=%s", st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "POST", "/solicitacoes", interessadoID, "INTERESSADO", map[string]any{
		"tipo":     "ADOCAO",
		"animalId": animalID,
		"mensagem": "tenho quintal grande",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}
	var sol struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &sol); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// duplicada pendente
	{
		st, _ := doReq(t, ts.URL, "POST", "/solicitacoes", interessadoID, "INTERESSADO", map[string]any{
			"tipo":     "ADOCAO",
			"animalId": animalID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for duplicate pending, got %d", st)
		}
	}

	// só admin atualiza status
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/solicitacoes/"+sol.ID+"/status", protetorID, "PROTETOR", map[string]any{"status": "APROVADA"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for non-admin, got %d", st)
		}
	}

	// admin aprova: animal vira ADOTADO e some do catálogo
	{
		st, body := doReq(t, ts.URL, "PATCH", "/solicitacoes/"+sol.ID+"/status", "admin-1", "ADMIN", map[string]any{"status": "APROVADA"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
	}
	if got := animalStatus(t, ts.URL, animalID); got != "ADOTADO" {
		t.Fatalf("expected animal ADOTADO, got %s", got)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals", "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var list []struct{ ID string }
		if err := json.Unmarshal(body, &list); err != nil {
			t.Fatalf("unmarshal list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected adopted animal hidden from catalog, got %s", string(body))
		}
	}

	// novo pedido contra animal adotado: indisponível
	{
		st, _ := doReq(t, ts.URL, "POST", "/solicitacoes", "interessado-2", "INTERESSADO", map[string]any{
			"tipo":     "ADOCAO",
			"animalId": animalID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unavailable animal, got %d", st)
		}
	}

	// dashboard admin reflete o estado
	{
		st, body := doReq(t, ts.URL, "GET", "/admin/dashboard", "admin-1", "ADMIN", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var stats struct {
			TotalAnimais      int `json:"totalAnimais"`
			TotalSolicitacoes int `json:"totalSolicitacoes"`
			AnimaisAdotados   int `json:"animaisAdotados"`
		}
		if err := json.Unmarshal(body, &stats); err != nil {
			t.Fatalf("unmarshal stats: %v", err)
		}
		if stats.TotalAnimais != 1 || stats.AnimaisAdotados != 1 || stats.TotalSolicitacoes != 1 {
			t.Fatalf("unexpected dashboard stats: %s", string(body))
		}
	}

	// dashboard é só de admin
	{
		st, _ := doReq(t, ts.URL, "GET", "/admin/dashboard", interessadoID, "INTERESSADO", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for non-admin dashboard, got %d", st)
		}
	}
}

func TestHTTP_AuthFlow_ComJWT(t *testing.T) {
	store, err := disk.NewStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("disk store: %v", err)
	}
	tokens := token.NewManager("segredo-de-teste", time.Hour)

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: tokens,
		TokenIssuer:  tokens,
		FileStore:    store,
	}))
	defer ts.Close()

	// registro devolve token
	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", "", map[string]any{
		"nome":  "Maria",
		"email": "maria@example.com",
		"senha": "segredo123",
		"role":  "INTERESSADO",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}
	var reg struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &reg); err != nil {
		t.Fatalf("unmarshal register: %v", err)
	}
	if reg.AccessToken == "" {
		t.Fatalf("expected access token in register response")
	}

	// /auth/me com o bearer do registro
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+reg.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do /auth/me: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 /auth/me, got %d", resp.StatusCode)
	}
	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatalf("decode /auth/me: %v", err)
	}
	if me.ID != reg.User.ID || me.Email != "maria@example.com" {
		t.Fatalf("unexpected /auth/me payload: %#v", me)
	}

	// sem token, /auth/me nega
	{
		st, _ := doReq(t, ts.URL, "GET", "/auth/me", "", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// login com credenciais erradas
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", "", map[string]any{
			"email": "maria@example.com",
			"senha": "senha-errada",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 wrong password, got %d", st)
		}
	}

	// login certo
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", "", "", map[string]any{
			"email": "maria@example.com",
			"senha": "segredo123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
	}
}
