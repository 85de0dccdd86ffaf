// Package config carrega a configuração do processo a partir de variáveis
// de ambiente, uma vez no boot. Depois disso é tratada como imutável.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port              string
	CORSAllowedOrigin string

	// Banco: se vazio, o router cai para os repositórios em memória (dev).
	DatabaseDSN string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Uploads
	UploadDir     string
	UploadBaseURL string

	// Notificações: se AMQPURL vazio, usa o notifier de log.
	AMQPURL   string
	AMQPQueue string

	// Rate limit de /auth/* (requisições por minuto por IP)
	RateLimitAuth int

	// Logging
	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lê o ambiente. JWT_SECRET é a única variável obrigatória.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("required environment variable JWT_SECRET is not set")
	}

	cfg.Port = getEnvString("PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.DatabaseDSN = os.Getenv("DB_DSN")
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", 24*time.Hour)
	cfg.UploadDir = getEnvString("UPLOAD_DIR", "./uploads")
	cfg.UploadBaseURL = getEnvString("UPLOAD_BASE_URL", "/uploads")
	cfg.AMQPURL = os.Getenv("AMQP_URL")
	cfg.AMQPQueue = getEnvString("AMQP_QUEUE", "adota-pet.notificacoes")
	cfg.RateLimitAuth = getEnvInt("RATE_LIMIT_AUTH", 30)
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvString("LOG_FORMAT", "text")
	cfg.AppName = getEnvString("APP_NAME", "adota-pet")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
