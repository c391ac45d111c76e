package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"github.com/lib/pq" // Используем pq для проверки ошибки
)

// PostgresStorage реализует OrderStorage с использованием PostgreSQL
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage создает новый экземпляр PostgresStorage
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	// Подключение к базе данных
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	// Проверка соединения
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		// Закрываем соединение в случае ошибки Ping
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close DB connection after ping error: %v", closeErr)
		}
		return nil, fmt.Errorf("database connection check error: %w", err)
	}

	// Создание таблицы orders, если её ещё нет
	createTableSQL := `CREATE TABLE IF NOT EXISTS orders (` +
		`id VARCHAR(36) PRIMARY KEY,` +
		`user_id VARCHAR(36) NOT NULL,` +
		`name TEXT NOT NULL,` +
		`phone TEXT NOT NULL,` +
		`address TEXT NOT NULL,` +
		`email TEXT,` +
		`quote JSONB NOT NULL,` +
		`created_at TIMESTAMPTZ NOT NULL` +
		`)`
	_, err = db.ExecContext(ctx, createTableSQL)
	if err != nil {
		// Закрываем соединение, если не удалось создать таблицу
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close DB connection after table creation error: %v", closeErr)
		}
		return nil, fmt.Errorf("table creation error: %w", err)
	}

	return &PostgresStorage{
		db: db,
	}, nil
}

// Save сохраняет заказ в хранилище
func (ps *PostgresStorage) Save(ctx context.Context, order models.Order) error {
	quote, err := json.Marshal(order.Quote)
	if err != nil {
		return fmt.Errorf("quote marshaling error: %w", err)
	}

	_, err = ps.db.ExecContext(ctx,
		"INSERT INTO orders (id, user_id, name, phone, address, email, quote, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		order.ID, order.UserID, order.Name, order.Phone, order.Address, order.Email, quote, order.CreatedAt)
	if err != nil {
		// Проверяем, является ли ошибка ошибкой нарушения уникальности от lib/pq
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // 23505 = unique_violation
			return ErrDuplicateOrder
		}
		// Для всех других ошибок возвращаем их обернутыми
		return fmt.Errorf("save order error: %w", err)
	}
	return nil
}

// GetUserOrders получает все заказы пользователя, отсортированные по времени создания
func (ps *PostgresStorage) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := ps.db.QueryContext(ctx,
		"SELECT id, user_id, name, phone, address, email, quote, created_at FROM orders WHERE user_id = $1 ORDER BY created_at",
		userID)
	if err != nil {
		return nil, fmt.Errorf("query orders error: %w", err)
	}
	defer rows.Close()

	var result []models.Order
	for rows.Next() {
		var order models.Order
		var quote []byte
		if err := rows.Scan(&order.ID, &order.UserID, &order.Name, &order.Phone,
			&order.Address, &order.Email, &quote, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order error: %w", err)
		}
		if err := json.Unmarshal(quote, &order.Quote); err != nil {
			return nil, fmt.Errorf("quote unmarshaling error: %w", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// CheckConnection проверяет соединение с базой данных
func (ps *PostgresStorage) CheckConnection(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}
