package config

import (
	"flag"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress     string        `env:"SERVER_ADDRESS"`           // Адрес для запуска HTTP-сервера
	TempDir           string        `env:"TEMP_DIR"`                 // Каталог для временных файлов оптимизации (пусто = системный)
	MaxUploadBytes    int64         `env:"MAX_UPLOAD_BYTES"`         // Максимальный размер загружаемого файла
	OptimizeThreshold int64         `env:"OPTIMIZE_THRESHOLD_BYTES"` // Файлы больше этого размера оптимизируются
	TargetRatio       float64       `env:"OPTIMIZE_TARGET_RATIO"`    // Доля граней, сохраняемая при децимации
	OptimizeTimeout   time.Duration `env:"OPTIMIZE_TIMEOUT"`         // Таймаут одной попытки оптимизации
	DatabaseDSN       string        `env:"DATABASE_DSN"`             // DSN PostgreSQL для хранилища заказов
	FileStoragePath   string        `env:"FILE_STORAGE_PATH"`        // Путь к файловому хранилищу заказов
	SecretKey         string        `env:"SECRET_KEY"`               // Ключ подписи JWT куки пользователя
	SMTPHost          string        `env:"SMTP_HOST"`                // SMTP сервер для писем о заказах
	SMTPPort          string        `env:"SMTP_PORT"`                // Порт SMTP сервера
	SMTPUser          string        `env:"SMTP_USER"`                // Пользователь SMTP
	SMTPPassword      string        `env:"SMTP_PASSWORD"`            // Пароль SMTP
	NotifyURL         string        `env:"NOTIFY_URL"`               // URL вебхука для уведомлений о заказах
}

// Значения по умолчанию: файлы больше 100 МБ оптимизируются,
// загрузка ограничена 200 МБ, децимация оставляет 70% граней.
const (
	defaultOptimizeThreshold = 100 * 1024 * 1024
	defaultMaxUploadBytes    = 200 * 1024 * 1024
	defaultTargetRatio       = 0.7
	defaultOptimizeTimeout   = 2 * time.Minute
)

// NewConfig инициализирует конфигурацию, читая флаги и переменные окружения.
func NewConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:     ":8080", // Значение по умолчанию
		MaxUploadBytes:    defaultMaxUploadBytes,
		OptimizeThreshold: defaultOptimizeThreshold,
		TargetRatio:       defaultTargetRatio,
		OptimizeTimeout:   defaultOptimizeTimeout,
		SecretKey:         "your-secret-key",
		SMTPPort:          "587",
	}

	// 1. Определение флагов командной строки
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	flag.StringVar(&cfg.TempDir, "t", cfg.TempDir, "Каталог временных файлов оптимизации (env: TEMP_DIR)")
	flag.Int64Var(&cfg.OptimizeThreshold, "o", cfg.OptimizeThreshold, "Порог размера файла для оптимизации в байтах (env: OPTIMIZE_THRESHOLD_BYTES)")
	flag.Float64Var(&cfg.TargetRatio, "r", cfg.TargetRatio, "Доля граней после децимации (env: OPTIMIZE_TARGET_RATIO)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "DSN PostgreSQL (env: DATABASE_DSN)")
	flag.StringVar(&cfg.FileStoragePath, "f", cfg.FileStoragePath, "Путь к файловому хранилищу заказов (env: FILE_STORAGE_PATH)")

	// 2. Парсинг флагов командной строки
	flag.Parse()

	// 3. Парсинг переменных окружения (имеет наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
