package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/petrolab/distillation-converter/internal/config"
	"github.com/petrolab/distillation-converter/internal/logging"
	"github.com/petrolab/distillation-converter/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	listenAddr := flag.String("listen", "", "Listen address, overrides the configuration")
	logLevel := flag.String("log-level", "", "Log level: info, debug or trace")
	development := flag.Bool("dev", false, "Use development log output")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `distill-server — distillation curve interconversion API

Usage:
  distill-server
  distill-server --listen :9090 --log-level debug
  distill-server --config /etc/petrolab/config.yaml

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  DISTILL_*    Overrides configuration keys, e.g. DISTILL_SERVER_LISTENADDRESS
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("distill-server %s\n", server.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("loading configuration: %v", err)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddress = *listenAddr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *development {
		cfg.Logging.Development = true
	}

	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fatalf("configuring logging: %v", err)
	}
	logging.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg.Server, logger).Start(ctx); err != nil {
		fatalf("server failed: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "distill-server: "+format+"\n", args...)
	os.Exit(1)
}
