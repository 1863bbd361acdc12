package main

import (
	"context"
	"os"

	"budget/internal/app"
	"budget/internal/cli"
	"budget/internal/console"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	repos, cleanup := cli.OpenBackend(ctx, logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	c := console.New(os.Stdin, os.Stdout)
	controller := app.NewController(c, logger, repos.IncomeSources, repos.Expenses)

	logger.Info("Starting budget application", "backend", cfg.DataBackend)
	controller.Run(ctx)
	logger.Info("Budget application stopped")
}
