package models

import "time"

// Quote представляет снимок расчета стоимости, прикладываемый к заказу
type Quote struct {
	Filename  string  `json:"filename"`
	MassGrams float64 `json:"mass_grams"`
	Tech      string  `json:"tech"`
	Material  string  `json:"material"`
	Price     int     `json:"price"`
}

// OrderRequest представляет запрос на оформление заказа
type OrderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Quote   Quote  `json:"quote"`
}

// Order представляет сохраненный заказ
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Quote     Quote     `json:"quote"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResult представляет результат оформления заказа.
// Warnings содержит некритичные ошибки уведомлений: заказ сохранен,
// но письмо или вебхук могли не дойти.
type OrderResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	OrderID  string   `json:"order_id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// UserOrder представляет запись заказа в списке заказов пользователя
type UserOrder struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Price     int       `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
