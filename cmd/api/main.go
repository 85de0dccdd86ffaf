// @title Adota Pet API
// @version 1.0
// @description API de adoção e apadrinhamento de animais.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adota-pet/internal/adapters/auth/token"
	notifyadapters "adota-pet/internal/adapters/notify"
	"adota-pet/internal/adapters/storage/postgres"
	"adota-pet/internal/adapters/upload/disk"
	"adota-pet/internal/platform/config"
	"adota-pet/internal/platform/logger"
	"adota-pet/internal/platform/metrics"
	"adota-pet/internal/ports/notify"
	"adota-pet/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		db, err = postgres.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("falha abrindo banco", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.RunMigrations(cfg.DatabaseDSN); err != nil {
			log.Error("falha nas migrações", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		log.Info("usando Postgres", nil)
	} else {
		log.Warn("DB_DSN ausente, usando storage em memória", nil)
	}

	store, err := disk.NewStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Error("falha preparando diretório de uploads", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	var notifier notify.Notifier
	if cfg.AMQPURL != "" {
		rmq, err := notifyadapters.NewRabbitMQNotifier(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Error("falha conectando no RabbitMQ", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer rmq.Close()
		notifier = rmq
		log.Info("notificações via RabbitMQ", map[string]any{"fila": cfg.AMQPQueue})
	} else {
		notifier = notifyadapters.NewLogNotifier(log)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	collector := metrics.NewCollector()

	handler := router.NewRouter(router.Options{
		AuthVerifier:      tokens,
		TokenIssuer:       tokens,
		DB:                db,
		FileStore:         store,
		UploadsDir:        store.Dir(),
		Notifier:          notifier,
		Metrics:           collector,
		Log:               log,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimitAuth:     cfg.RateLimitAuth,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("servidor no ar", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("erro no servidor", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown forçado", map[string]any{"err": err.Error()})
	}
	log.Info("servidor encerrado", nil)
}
