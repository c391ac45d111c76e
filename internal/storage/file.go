package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"go.uber.org/zap"
)

// FileStorage implements OrderStorage using an append-only JSONL file
type FileStorage struct {
	filePath string
	orders   map[string]models.Order
	mutex    sync.RWMutex
	file     *os.File
	logger   *zap.Logger
}

// NewFileStorage creates a new FileStorage instance
func NewFileStorage(filePath string, logger *zap.Logger) (*FileStorage, error) {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	fs := &FileStorage{
		filePath: filePath,
		file:     file,
		orders:   make(map[string]models.Order),
		logger:   logger,
	}

	// Load existing data from file
	if err := fs.loadFromFile(); err != nil {
		logger.Error("Error loading data from file", zap.Error(err))
		// Не возвращаем ошибку, так как файл может быть пустым
	}

	return fs, nil
}

// loadFromFile loads orders from the file
func (fs *FileStorage) loadFromFile() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	// Перемещаем указатель в начало файла
	if _, err := fs.file.Seek(0, 0); err != nil {
		return fmt.Errorf("error seeking to file start: %w", err)
	}

	decoder := json.NewDecoder(fs.file)
	for decoder.More() {
		var order models.Order
		if err := decoder.Decode(&order); err != nil {
			return fmt.Errorf("error decoding order: %w", err)
		}
		fs.orders[order.ID] = order
	}

	return nil
}

// Save сохраняет заказ в файл
func (fs *FileStorage) Save(ctx context.Context, order models.Order) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if _, exists := fs.orders[order.ID]; exists {
		return ErrDuplicateOrder
	}

	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("error marshaling order: %w", err)
	}

	if _, err := fs.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}

	fs.orders[order.ID] = order
	return nil
}

// GetUserOrders получает все заказы пользователя из файла,
// отсортированные по времени создания
func (fs *FileStorage) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	var result []models.Order
	for _, order := range fs.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// CheckConnection проверяет доступность файла
func (fs *FileStorage) CheckConnection(ctx context.Context) error {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	if fs.file == nil {
		return fmt.Errorf("file is not open")
	}

	return nil
}

// Sync принудительно синхронизирует данные с диском
func (fs *FileStorage) Sync() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if fs.file != nil {
		if err := fs.file.Sync(); err != nil {
			return fmt.Errorf("error syncing file: %w", err)
		}
	}

	return nil
}

// Close закрывает файл
func (fs *FileStorage) Close() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if fs.file != nil {
		// Принудительно синхронизируем данные перед закрытием
		if err := fs.file.Sync(); err != nil {
			fs.logger.Error("Error syncing file before close", zap.Error(err))
		}

		if err := fs.file.Close(); err != nil {
			return fmt.Errorf("error closing file: %w", err)
		}
		fs.file = nil
	}

	return nil
}
