package storage

import (
	"context"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
)

// OrderStorage интерфейс для хранилища заказов
type OrderStorage interface {
	// Save сохраняет заказ в хранилище
	Save(ctx context.Context, order models.Order) error

	// GetUserOrders получает все заказы, оформленные пользователем
	GetUserOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// DatabaseChecker интерфейс для проверки соединения с базой данных
type DatabaseChecker interface {
	// CheckConnection проверяет соединение с базой данных
	CheckConnection(ctx context.Context) error
}
