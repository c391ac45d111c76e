package main

import (
	"log"

	"github.com/InQaaaaGit/meshprice.git/internal/app"
	"github.com/InQaaaaGit/meshprice.git/internal/buildinfo"
	"github.com/InQaaaaGit/meshprice.git/internal/config"
	"go.uber.org/zap"
)

// Переопределяются при сборке через ldflags
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Print()

	// Инициализация логгера
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	// Инициализация конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("Error initializing config", zap.Error(err))
	}

	// Создание и настройка приложения
	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("Error creating application", zap.Error(err))
	}
	if err := application.Configure(); err != nil {
		logger.Fatal("Error configuring application", zap.Error(err))
	}

	// Запуск сервера
	server := application.GetServer()
	logger.Info("Starting HTTP server", zap.String("address", cfg.ServerAddress))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}
