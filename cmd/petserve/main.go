// Command petserve exposes creature state over HTTP, backed by the
// SQLite store.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/talgya/mini-pet/internal/api"
	"github.com/talgya/mini-pet/internal/config"
	"github.com/talgya/mini-pet/internal/store"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "optional YAML config path")
		port      = flag.Int("port", 0, "listen port (0 = config default)")
		dbPath    = flag.String("db", "", "SQLite path (empty = config default)")
		rateLimit = flag.Int("rate-limit", 120, "mutating requests per client per minute")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if *port <= 0 {
		*port = cfg.Server.Port
	}
	if *dbPath == "" {
		*dbPath = cfg.Server.DBPath
	}

	if dir := filepath.Dir(*dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("create data dir failed", "error", err)
			os.Exit(1)
		}
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		slog.Error("open database failed", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	server := &api.Server{
		DB:      db,
		Rates:   cfg.Sim.Decay,
		Port:    *port,
		Limiter: api.NewRateLimiter(*rateLimit, time.Minute),
	}
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
