package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/csv-insight/backend/internal/analysis"
	"github.com/csv-insight/backend/internal/config"
	"github.com/csv-insight/backend/internal/logging"
	"github.com/csv-insight/backend/internal/server"
	"github.com/csv-insight/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.Advanced.LogLevel, cfg.Advanced.LogFormat)
	logger := logging.New("main")

	opts, err := cfg.AnalysisOptions()
	if err != nil {
		logger.Error("failed to load locale profile", "profile", cfg.Processing.LocaleProfile, "error", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, analysis.NewAnalyzer(opts), Version)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	printBanner(*configPath, cfg, opts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func printBanner(configPath string, cfg *config.AppConfig, opts analysis.Options) {
	ui := "disabled"
	if web.HasEmbeddedFiles() {
		ui = "embedded"
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           CSV Insight Server                              ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  UI:         %-45s║\n", ui)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Profile:   %-46s║\n", opts.Profile.Name)
	fmt.Printf("║  Encoding:  %-46s║\n", opts.Charset)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	if cfg.Advanced.EnableMetrics {
		fmt.Printf("Metrics at http://localhost:%d/metrics\n\n", cfg.Server.Port)
	}
}
