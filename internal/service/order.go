package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"github.com/InQaaaaGit/meshprice.git/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingOrderFields возвращается, когда в заказе не хватает обязательных полей
var ErrMissingOrderFields = errors.New("missing required order fields")

// Emailer определяет интерфейс отправки письма с подтверждением заказа
type Emailer interface {
	SendOrderEmail(ctx context.Context, to string, order models.Order) error
}

// Notifier определяет интерфейс отправки уведомления о заказе
type Notifier interface {
	SendOrderNotify(ctx context.Context, phone string, order models.Order) error
}

// OrderService оформляет заказы: сохраняет их в хранилище и рассылает
// уведомления. Сохранение критично, уведомления — нет.
type OrderService struct {
	storage  storage.OrderStorage
	emailer  Emailer
	notifier Notifier
	logger   *zap.Logger
}

// NewOrderService создает новый экземпляр OrderService
func NewOrderService(st storage.OrderStorage, emailer Emailer, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		storage:  st,
		emailer:  emailer,
		notifier: notifier,
		logger:   logger,
	}
}

// Create оформляет заказ. Ошибка сохранения в хранилище фатальна и
// возвращается вызывающему; ошибки отправки письма и вебхука собираются
// в Warnings при успешном ответе.
func (s *OrderService) Create(ctx context.Context, userID string, req models.OrderRequest) (models.OrderResult, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	address := strings.TrimSpace(req.Address)
	email := strings.TrimSpace(req.Email)

	// 1. Проверка обязательных полей
	if name == "" || phone == "" || address == "" || req.Quote == (models.Quote{}) {
		return models.OrderResult{}, ErrMissingOrderFields
	}

	order := models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Phone:     phone,
		Address:   address,
		Email:     email,
		Quote:     req.Quote,
		CreatedAt: time.Now(),
	}

	// 2. Сохранение заказа в хранилище (критичный шаг)
	if err := s.storage.Save(ctx, order); err != nil {
		return models.OrderResult{}, fmt.Errorf("error saving order: %w", err)
	}

	var warnings []string

	// 3. Письмо с подтверждением (если указан адрес)
	if email == "" {
		warnings = append(warnings, "no email address provided for confirmation")
	} else if err := s.emailer.SendOrderEmail(ctx, email, order); err != nil {
		s.logger.Error("Error sending confirmation email",
			zap.String("order_id", order.ID), zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("confirmation email failed: %v", err))
	}

	// 4. Уведомление на вебхук
	if err := s.notifier.SendOrderNotify(ctx, phone, order); err != nil {
		s.logger.Error("Error sending order notification",
			zap.String("order_id", order.ID), zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("order notification failed: %v", err))
	}

	// 5. Итоговый результат: заказ сохранен в любом случае
	message := "Order placed successfully"
	if len(warnings) > 0 {
		message = "Order placed, but some notifications failed"
	}

	return models.OrderResult{
		Success:  true,
		Message:  message,
		OrderID:  order.ID,
		Warnings: warnings,
	}, nil
}

// GetUserOrders возвращает заказы пользователя в кратком виде
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.UserOrder, error) {
	orders, err := s.storage.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user orders: %w", err)
	}

	result := make([]models.UserOrder, 0, len(orders))
	for _, order := range orders {
		result = append(result, models.UserOrder{
			ID:        order.ID,
			Filename:  order.Quote.Filename,
			Price:     order.Quote.Price,
			CreatedAt: order.CreatedAt,
		})
	}

	return result, nil
}
