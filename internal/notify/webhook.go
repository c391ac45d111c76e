package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"go.uber.org/zap"
)

// webhookPayload представляет тело уведомления о новом заказе
type webhookPayload struct {
	Phone   string       `json:"phone"`
	OrderID string       `json:"order_id"`
	Name    string       `json:"name"`
	Quote   models.Quote `json:"quote"`
}

// WebhookNotifier отправляет уведомления о заказах на внешний вебхук
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewWebhookNotifier создает новый экземпляр WebhookNotifier
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// SendOrderNotify отправляет уведомление о заказе на вебхук
func (n *WebhookNotifier) SendOrderNotify(ctx context.Context, phone string, order models.Order) error {
	if n.url == "" {
		return errors.New("webhook URL is not configured")
	}

	payload := webhookPayload{
		Phone:   phone,
		OrderID: order.ID,
		Name:    order.Name,
		Quote:   order.Quote,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending webhook: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			n.logger.Error("Error closing webhook response body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Info("Order webhook notification sent", zap.String("order_id", order.ID))
	return nil
}
