package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/library_api/internal/app"
	"github.com/Freeeeeet/library_api/internal/config"
	"github.com/Freeeeeet/library_api/internal/controller"
	"github.com/Freeeeeet/library_api/internal/service"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error("Library API stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	_ = logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Sugar().Infow("Starting library API",
		"environment", cfg.Environment,
		"storage", cfg.Storage,
		"addr", cfg.HTTPAddr)

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	studentService := service.NewStudentService(storage.Tx, storage.Students, logger)
	bookService := service.NewBookService(storage.Tx, storage.Books, logger)
	borrowService := service.NewBorrowService(storage.Tx, studentService, bookService, storage.Loans, logger)

	httpController := controller.NewHTTPController(studentService, bookService, borrowService, logger)

	server := app.NewServer(cfg.HTTPAddr, httpController.Handler(), cfg.ShutdownTimeout, logger)
	return server.Run(ctx)
}
