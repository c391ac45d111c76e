package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"go.uber.org/zap"
)

// MemoryStorage реализует OrderStorage с использованием памяти
type MemoryStorage struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	logger *zap.Logger
}

// NewMemoryStorage создает новый экземпляр MemoryStorage
func NewMemoryStorage(logger *zap.Logger) *MemoryStorage {
	return &MemoryStorage{
		orders: make(map[string]models.Order),
		logger: logger,
	}
}

// Save сохраняет заказ в памяти
func (ms *MemoryStorage) Save(ctx context.Context, order models.Order) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.orders[order.ID]; exists {
		return ErrDuplicateOrder
	}

	ms.orders[order.ID] = order
	return nil
}

// GetUserOrders получает все заказы пользователя из памяти,
// отсортированные по времени создания
func (ms *MemoryStorage) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var result []models.Order
	for _, order := range ms.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// CheckConnection проверяет доступность хранилища
func (ms *MemoryStorage) CheckConnection(ctx context.Context) error {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.orders == nil {
		return fmt.Errorf("storage is not initialized")
	}

	return nil
}
