package shared

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	DataDir       string
	StoreBackend  string // file|mysql|redis
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	ImportWorkers int
	RateLimitRPS  int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		DataDir:       env("DATA_DIR", "data"),
		StoreBackend:  env("STORE_BACKEND", "file"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/flexreviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisPass:     env("REDIS_PASSWORD", ""),
		ImportWorkers: atoi("IMPORT_WORKERS", 4),
		RateLimitRPS:  atoi("RATE_LIMIT_RPS", 50),
	}
	switch c.StoreBackend {
	case "file", "mysql", "redis":
	default:
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, falling back to file")
		c.StoreBackend = "file"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
