package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/worldsync/worldsync-server/internal/app"
	"github.com/worldsync/worldsync-server/internal/config"
	"github.com/worldsync/worldsync-server/internal/log"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to ./config.yaml)")
	addr := flag.String("addr", "", "HTTP listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	bootLogger := log.New("info")

	cfg, cfgPath, err := config.Load(bootLogger, *configPath)
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}
	cfg.UpdateFrom(config.Config{Addr: *addr, LogLevel: *logLevel})

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", cfgPath).Str("addr", cfg.Addr).Msg("starting worldsync server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(&cfg, logger)
	if err != nil {
		stdlog.Fatalf("init app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		stdlog.Fatalf("server exited with error: %v", err)
	}
	logger.Info().Msg("server stopped")
}
