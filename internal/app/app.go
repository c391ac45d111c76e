// Package app содержит основную структуру приложения и логику инициализации.
// Предоставляет точку входа для запуска HTTP сервера с настроенными маршрутами и middleware.
package app

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/InQaaaaGit/meshprice.git/internal/config"
	"github.com/InQaaaaGit/meshprice.git/internal/handler"
	"github.com/InQaaaaGit/meshprice.git/internal/middleware"
	"github.com/InQaaaaGit/meshprice.git/internal/notify"
	"github.com/InQaaaaGit/meshprice.git/internal/optimizer"
	"github.com/InQaaaaGit/meshprice.git/internal/service"
	"github.com/InQaaaaGit/meshprice.git/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App представляет основное приложение сервиса расчета стоимости 3D-печати.
// Инкапсулирует конфигурацию, HTTP роутер, логгер и обработчики запросов.
type App struct {
	config  *config.Config
	router  *chi.Mux
	logger  *zap.Logger
	handler *handler.Handler
}

// NewApp создает и инициализирует новый экземпляр приложения:
// хранилище заказов, шлюз оптимизации, сервисный слой и обработчики.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	orderStorage, err := newOrderStorage(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating order storage: %w", err)
	}

	gateway := optimizer.NewGateway(cfg.OptimizeThreshold, cfg.TargetRatio,
		cfg.OptimizeTimeout, cfg.TempDir, logger)

	analyzeService := service.NewAnalyzeService(logger)
	priceService := service.NewPriceService()
	orderService := service.NewOrderService(
		orderStorage,
		notify.NewEmailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, logger),
		notify.NewWebhookNotifier(cfg.NotifyURL, logger),
		logger,
	)

	h := handler.NewHandler(analyzeService, priceService, orderService, gateway, orderStorage, cfg, logger)

	return &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		handler: h,
	}, nil
}

// newOrderStorage выбирает реализацию хранилища заказов по конфигурации:
// PostgreSQL при заданном DSN, файл при заданном пути, иначе память.
func newOrderStorage(cfg *config.Config, logger *zap.Logger) (storage.OrderStorage, error) {
	if cfg.DatabaseDSN != "" {
		logger.Info("Using PostgreSQL order storage")
		return storage.NewPostgresStorage(cfg.DatabaseDSN)
	}
	if cfg.FileStoragePath != "" {
		logger.Info("Using file order storage", zap.String("path", cfg.FileStoragePath))
		return storage.NewFileStorage(cfg.FileStoragePath, logger)
	}
	logger.Info("Using in-memory order storage")
	return storage.NewMemoryStorage(logger), nil
}

// Configure настраивает middleware и регистрирует маршруты приложения
func (a *App) Configure() error {
	// Middleware
	a.router.Use(middleware.LoggerMiddleware(a.logger))
	a.router.Use(middleware.GzipMiddleware)
	a.router.Use(middleware.WithAuth(a.config.SecretKey))

	// Маршруты
	a.router.Get("/", a.handler.HandleIndex)
	a.router.Post("/upload", a.handler.HandleUpload)
	a.router.Post("/analyze", a.handler.HandleAnalyze)
	a.router.Post("/price", a.handler.HandlePrice)
	a.router.Post("/order", a.handler.HandleOrder)
	a.router.Get("/ping", a.handler.HandlePing)
	a.router.Get("/api/user/orders", a.handler.HandleGetUserOrders)

	// Профилирование (доступно только в debug режиме)
	a.router.Mount("/debug/pprof", http.DefaultServeMux)

	return nil
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Таймауты записи рассчитаны на загрузку и оптимизацию больших файлов.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:         a.config.ServerAddress,
		Handler:      a.router,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
}
