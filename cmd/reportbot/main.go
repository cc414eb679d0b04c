// File path: cmd/reportbot/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dca-labs/reportbot/internal/bot"
	"github.com/dca-labs/reportbot/internal/catalog"
	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/config"
	"github.com/dca-labs/reportbot/internal/document"
	"github.com/dca-labs/reportbot/internal/enhance"
	"github.com/dca-labs/reportbot/internal/grades"
	"github.com/dca-labs/reportbot/internal/pipeline"
	"github.com/dca-labs/reportbot/internal/report"
	"github.com/dca-labs/reportbot/internal/transport/telegram"
	"github.com/dca-labs/reportbot/internal/transport/webhook"
)

func main() {
	logger := common.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		logger.Warn("reportbot: .env file not loaded", "error", err)
	} else {
		logger.Info("reportbot: environment loaded from .env")
	}

	cfg := config.LoadConfig()
	mode := flag.String("mode", "", "transport mode: poll or webhook")
	addr := flag.String("addr", "", "webhook listen address")
	catalogPath := flag.String("catalog", "", "path to the SQLite report catalog")
	outputDir := flag.String("out", "", "directory for rendered documents and record files")
	docFormat := flag.String("doc-format", "", "document format: markdown or html")
	flag.Parse()
	cfg = cfg.Merge(config.Config{
		Mode:           *mode,
		Addr:           *addr,
		CatalogPath:    *catalogPath,
		OutputDir:      *outputDir,
		DocumentFormat: *docFormat,
	})
	if err := cfg.Validate(); err != nil {
		logger.Error("reportbot: invalid configuration", "error", err)
		fmt.Println("configuration error:", err)
		os.Exit(1)
	}
	logger.Info("reportbot: startup initiated", "mode", cfg.Mode, "out", cfg.OutputDir)

	store, err := catalog.Open(catalog.LoadConfig().Merge(catalog.Config{Path: cfg.CatalogPath}))
	if err != nil {
		logger.Error("reportbot: catalog initialization failed", "error", err)
		fmt.Println("catalog error:", err)
		os.Exit(1)
	}
	defer store.Close()

	renderer, err := document.NewRenderer(cfg.OutputDir, document.Format(cfg.DocumentFormat))
	if err != nil {
		logger.Error("reportbot: renderer initialization failed", "error", err)
		fmt.Println("renderer error:", err)
		os.Exit(1)
	}

	var tgOpts []telegram.Option
	if cfg.TelegramAPIURL != "" {
		tgOpts = append(tgOpts, telegram.WithBaseURL(cfg.TelegramAPIURL))
	}
	client, err := telegram.NewClient(cfg.TelegramToken, tgOpts...)
	if err != nil {
		logger.Error("reportbot: telegram client initialization failed", "error", err)
		fmt.Println("telegram error:", err)
		os.Exit(1)
	}

	pipe, err := pipeline.New(store, renderer, client, cfg.OutputDir)
	if err != nil {
		logger.Error("reportbot: pipeline initialization failed", "error", err)
		fmt.Println("pipeline error:", err)
		os.Exit(1)
	}

	assembler := report.NewAssembler(enhance.NewProvider(), nil)
	router := bot.NewRouter(grades.NewCollector())
	controller := bot.New(router, client, assembler, pipe)

	switch cfg.Mode {
	case config.ModeWebhook:
		server, err := webhook.NewServer(controller, store)
		if err != nil {
			logger.Error("reportbot: webhook server initialization failed", "error", err)
			fmt.Println("webhook error:", err)
			os.Exit(1)
		}
		err = server.Serve(ctx, cfg.Addr)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("reportbot: webhook server stopped", "error", err)
			os.Exit(1)
		}
	default:
		err = client.Poll(ctx, controller)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("reportbot: polling stopped", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("reportbot: shutdown complete")
}
