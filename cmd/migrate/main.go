// Comando migrate aplica el esquema embebido con goose.
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate status
//	go run ./cmd/migrate down
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/jhoicas/backoffice-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-inventario/migrations"
	"github.com/jhoicas/backoffice-inventario/pkg/config"
	"github.com/jhoicas/backoffice-inventario/pkg/logger"
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info", Env: "development"}).Fatal().Err(err).Msg("cargar config")
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Env: cfg.App.Env, App: cfg.App.Name}).With().Str("cmd", "migrate").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar DB")
	}
	defer pool.Close()
	db := postgres.OpenDB(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("dialecto goose")
	}

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"up"}
	}
	command := args[0]
	if err := goose.RunContext(ctx, command, db, ".", args[1:]...); err != nil {
		log.Error().Err(err).Str("comando", command).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("comando", command).Msg("migración completada")
}
