package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret"

// authProbe запоминает ID пользователя, попавший в контекст запроса
func authProbe(gotUserID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if ok {
			*gotUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestWithAuth_NewUserGetsCookie(t *testing.T) {
	var gotUserID string
	handler := WithAuth(testSecretKey)(authProbe(&gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotUserID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "user_id", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestWithAuth_ExistingCookieKeepsUserID(t *testing.T) {
	// Первый запрос выдает куку
	var firstUserID string
	handler := WithAuth(testSecretKey)(authProbe(&firstUserID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	// Второй запрос с той же кукой сохраняет ID пользователя
	var secondUserID string
	handler = WithAuth(testSecretKey)(authProbe(&secondUserID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, firstUserID, secondUserID)
	// Новая кука не выдается
	assert.Empty(t, rec.Result().Cookies())
}

func TestWithAuth_InvalidTokenGetsNewID(t *testing.T) {
	var gotUserID string
	handler := WithAuth(testSecretKey)(authProbe(&gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "user_id", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, gotUserID)
	// Невалидный токен заменяется новой кукой
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestWithAuth_WrongKeyRejected(t *testing.T) {
	// Кука подписана другим ключом
	var firstUserID string
	handler := WithAuth("other-secret")(authProbe(&firstUserID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var secondUserID string
	handler = WithAuth(testSecretKey)(authProbe(&secondUserID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, secondUserID)
	assert.NotEqual(t, firstUserID, secondUserID)
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
