// Package cli wires the command-line interface: local ledger commands plus
// the cloud backup flows.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/nexo-finance/nexo/internal/cloud"
	"github.com/nexo-finance/nexo/internal/config"
	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/ledger"
	"github.com/nexo-finance/nexo/internal/logger"
	"github.com/nexo-finance/nexo/internal/notify"
	"github.com/nexo-finance/nexo/internal/storage"
)

// app is the shared command wiring, built once per invocation.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *ledger.Store
	engine *cloud.Engine
	toasts *notify.Center
}

func buildApp() (*app, error) {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	kv, err := storage.OpenFileKV(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir %q: %w", cfg.DataDir, err)
	}
	store := ledger.Open(kv, log)

	toasts := notify.NewCenter(func(t notify.Toast) {
		if t.Severity == notify.Error {
			fmt.Fprintln(os.Stderr, t.Message)
			return
		}
		fmt.Println(t.Message)
	})

	clients := map[domain.Provider]cloud.Client{
		domain.ProviderGitHub:  cloud.NewGitHubClient(cfg.GitHubBaseURL),
		domain.ProviderJSONBin: cloud.NewJSONBinClient(cfg.JSONBinBaseURL),
	}
	if cfg.GCSBucket != "" {
		clients[domain.ProviderGCS] = cloud.NewGCSClient(cfg.GCSBucket)
	}

	engine := cloud.NewEngine(store, cloud.NewProbeChecker(cfg.ProbeAddr), toasts, clients, log)

	return &app{cfg: cfg, log: log, store: store, engine: engine, toasts: toasts}, nil
}
