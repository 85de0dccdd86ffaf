// Package router monta o http.Handler completo da API: middlewares,
// seleção de storage e as rotas de cada módulo de domínio.
package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "adota-pet/internal/adapters/storage/memory"
	pg "adota-pet/internal/adapters/storage/postgres"
	_ "adota-pet/internal/docs" // registro do swagger.json gerado
	"adota-pet/internal/domain/admin"
	"adota-pet/internal/domain/animals"
	"adota-pet/internal/domain/solicitacoes"
	"adota-pet/internal/domain/users"
	"adota-pet/internal/middleware"
	"adota-pet/internal/platform/logger"
	"adota-pet/internal/platform/metrics"
	"adota-pet/internal/ports/auth"
	"adota-pet/internal/ports/notify"
	"adota-pet/internal/ports/upload"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil liga o modo dev por headers
	TokenIssuer  auth.TokenIssuer

	// Se nil, usa os repositórios em memória.
	DB *sql.DB

	FileStore upload.FileStore
	// Diretório servido em /uploads. Vazio desliga o file server.
	UploadsDir string

	Notifier notify.Notifier
	Metrics  *metrics.Collector
	Log      logger.Logger

	CORSAllowedOrigin string
	RateLimitAuth     int // req/min por IP em /auth/*; <=0 desliga
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.CORSAllowedOrigin != "" {
		r.Use(middleware.CORS(opts.CORSAllowedOrigin))
	}
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		usersRepo users.Repository
		animRepo  animals.Repository
		solRepo   solicitacoes.Repository
		adminRepo admin.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		animRepo = pg.NewAnimalsRepo(opts.DB)
		solRepo = pg.NewSolicitacoesRepo(opts.DB)
		adminRepo = pg.NewAdminRepo(opts.DB)
	} else {
		mu := mem.NewUsersRepo()
		ma := mem.NewAnimalsRepo()
		ms := mem.NewSolicitacoesRepo(ma)
		usersRepo = mu
		animRepo = ma
		solRepo = ms
		adminRepo = mem.NewAdminRepo(mu, ma, ms)
	}

	usersSvc := users.NewService(usersRepo)
	animaisSvc := animals.NewService(animRepo)

	// interface não-nil com ponteiro nil dentro passaria no guard do serviço
	var rec solicitacoes.MetricsRecorder
	if opts.Metrics != nil {
		rec = opts.Metrics
	}
	solSvc := solicitacoes.NewService(solRepo, animaisSvc, opts.Notifier, rec, opts.Log)

	if opts.RateLimitAuth > 0 {
		rl := middleware.NewRateLimiter(opts.RateLimitAuth)
		r.Group(func(g chi.Router) {
			g.Use(rl.Limit)
			users.RegisterRoutes(g, usersSvc, opts.TokenIssuer)
		})
	} else {
		users.RegisterRoutes(r, usersSvc, opts.TokenIssuer)
	}

	animals.RegisterRoutes(r, animaisSvc, opts.FileStore)
	solicitacoes.RegisterRoutes(r, solSvc, animaisSvc)
	admin.RegisterRoutes(r, adminRepo)

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
