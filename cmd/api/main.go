package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "flex_reviews/internal/adapters/http_server"
	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	filestore "flex_reviews/internal/storage/file"
	mysqlrepo "flex_reviews/internal/storage/mysql"
	"flex_reviews/internal/storage/redisdoc"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	store := openStore(cfg)

	q := app.NewQueryService(store)
	sel := app.NewSelectionService(store)

	srv := server.New(cfg.RateLimitRPS)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Sel: sel})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.StoreBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func openStore(cfg shared.Config) domain.DocumentStore {
	switch cfg.StoreBackend {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		repo := mysqlrepo.New(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("ensure schema failed")
		}
		log.Info().Msg("mysql document store ready")
		return repo
	case "redis":
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis document store ready")
		return redisdoc.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	default:
		return filestore.New(cfg.DataDir)
	}
}
