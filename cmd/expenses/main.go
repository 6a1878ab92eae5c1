package main

import (
	"context"
	"os"

	"expenses/internal/cli"
	"expenses/internal/console"
	"expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx := log.NewContext(context.Background(), logger)

	res := cli.InitBackend(ctx, logger, cfg)
	svc := services.NewExpenseService(res.Repository, logger).WithCleanup(res.Cleanup)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Shutdown error", log.FieldError, err, log.FieldOperation, log.OpShutdown)
		}
	}()

	logger.Info("Starting expense tracker",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend,
		log.FieldLocation, res.Repository.Location())

	if err := console.New(os.Stdin, os.Stdout, svc, logger).Run(ctx); err != nil {
		logger.Error("Console stopped", log.FieldError, err)
	}
}
