package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/InQaaaaGit/meshprice.git/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// UserIDKey используется как ключ для хранения ID пользователя в контексте
	UserIDKey contextKey = "user_id"

	cookieName    = "user_id"
	tokenLifetime = 24 * time.Hour
)

// WithAuth создает middleware для идентификации пользователя по JWT куке.
// Если куки нет или токен невалиден, пользователю выдается новый ID.
func WithAuth(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err == nil {
				// Проверяем токен из куки
				claims := &models.UserClaims{}
				token, err := jwt.ParseWithClaims(cookie.Value, claims,
					func(t *jwt.Token) (interface{}, error) {
						if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
							return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
						}
						return []byte(secretKey), nil
					})
				if err == nil && token.Valid && claims.UserID != "" {
					ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Куки нет или токен невалиден: выдаем новый ID
			userID := uuid.New().String()
			token, err := createToken(userID, secretKey)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(tokenLifetime),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// createToken создает подписанный JWT токен с ID пользователя
func createToken(userID, secretKey string) (string, error) {
	claims := &models.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
