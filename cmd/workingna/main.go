package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"workingna/internal/app"
	"workingna/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	server, err := app.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Fatal("ListenAndServe", zap.Error(err))
	}
}
