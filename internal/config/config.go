package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	RedisAddr   string // vacío = catálogo sin caché
}

func Load() *Config {
	// .env solo existe en desarrollo local
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=queseria port=5432 sslmode=disable"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=queseria port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, definí tu propia conexión de Postgres para producción.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto, definí tu propio dominio para producción.")
	}
	if cfg.RedisAddr == "" {
		log.Println("[WARN] REDIS_ADDR no definido, el catálogo de productos se sirve sin caché.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
