// Package notify содержит отправку уведомлений о заказах:
// письма по SMTP и вебхук для внешнего мессенджера.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"go.uber.org/zap"
)

// Emailer отправляет письма с подтверждением заказа через SMTP
type Emailer struct {
	host     string
	port     string
	user     string
	password string
	logger   *zap.Logger
}

// NewEmailer создает новый экземпляр Emailer
func NewEmailer(host, port, user, password string, logger *zap.Logger) *Emailer {
	return &Emailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		logger:   logger,
	}
}

// SendOrderEmail отправляет письмо с подтверждением заказа на адрес to.
// Контекст не прерывает уже начатую SMTP-сессию: net/smtp не принимает
// контекст, поэтому проверяем отмену только перед отправкой.
func (e *Emailer) SendOrderEmail(ctx context.Context, to string, order models.Order) error {
	if e.host == "" {
		return errors.New("SMTP is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", e.user)
	fmt.Fprintf(&body, "To: %s\r\n", to)
	fmt.Fprintf(&body, "Subject: Order confirmation %s\r\n", order.ID)
	body.WriteString("\r\n")
	fmt.Fprintf(&body, "Order %s has been placed.\r\n\r\n", order.ID)
	fmt.Fprintf(&body, "Model: %s\r\n", order.Quote.Filename)
	fmt.Fprintf(&body, "Technology: %s, material: %s\r\n", order.Quote.Tech, order.Quote.Material)
	fmt.Fprintf(&body, "Mass: %.2f g\r\n", order.Quote.MassGrams)
	fmt.Fprintf(&body, "Price: %d\r\n", order.Quote.Price)
	fmt.Fprintf(&body, "Delivery address: %s\r\n", order.Address)

	addr := net.JoinHostPort(e.host, e.port)
	auth := smtp.PlainAuth("", e.user, e.password, e.host)
	if err := smtp.SendMail(addr, auth, e.user, []string{to}, []byte(body.String())); err != nil {
		return fmt.Errorf("error sending order email: %w", err)
	}

	e.logger.Info("Order confirmation email sent",
		zap.String("order_id", order.ID), zap.String("to", to))
	return nil
}
