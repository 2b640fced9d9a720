package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"sklad-backend/controllers"
	"sklad-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOtp(t *testing.T) {
	st := store.NewGormStore(setupTestDB())
	app := setupTestApp(st)
	email, _ := createTestAdmin(st)

	t.Run("Неизвестный email", func(t *testing.T) {
		body, _ := json.Marshal(controllers.SendOtpRequest{Email: "stranger@test.com"})
		req := httptest.NewRequest("POST", "/api/admin/auth/send-otp", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Без email", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/admin/auth/send-otp", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Известный администратор", func(t *testing.T) {
		body, _ := json.Marshal(controllers.SendOtpRequest{Email: email})
		req := httptest.NewRequest("POST", "/api/admin/auth/send-otp", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response controllers.AuthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
		assert.True(t, response.Success)
		// SMTP в тестах не настроен
		assert.False(t, response.Emailed)

		// Код сохранен и еще действует
		otp, err := st.GetOtp(email)
		require.NoError(t, err)
		require.NotNil(t, otp)
		assert.Len(t, otp.Code, 4)
		assert.False(t, otp.Expired(time.Now()))
	})
}

func TestLogin(t *testing.T) {
	st := store.NewGormStore(setupTestDB())
	app := setupTestApp(st)
	email, password := createTestAdmin(st)

	login := func(t *testing.T, req controllers.LoginRequest) (*controllers.AuthResponse, int) {
		t.Helper()
		body, _ := json.Marshal(req)
		httpReq := httptest.NewRequest("POST", "/api/admin/auth/login", bytes.NewBuffer(body))
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(httpReq)
		require.NoError(t, err)
		var response controllers.AuthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
		return &response, resp.StatusCode
	}

	sendOtp := func(t *testing.T) string {
		t.Helper()
		body, _ := json.Marshal(controllers.SendOtpRequest{Email: email})
		req := httptest.NewRequest("POST", "/api/admin/auth/send-otp", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		otp, err := st.GetOtp(email)
		require.NoError(t, err)
		require.NotNil(t, otp)
		return otp.Code
	}

	t.Run("Неполные данные", func(t *testing.T) {
		_, status := login(t, controllers.LoginRequest{Email: email, Password: password})
		assert.Equal(t, 400, status)
	})

	t.Run("Неизвестный администратор", func(t *testing.T) {
		_, status := login(t, controllers.LoginRequest{Email: "stranger@test.com", Password: password, Otp: "1234"})
		assert.Equal(t, 403, status)
	})

	t.Run("Неверный код", func(t *testing.T) {
		sendOtp(t)
		_, status := login(t, controllers.LoginRequest{Email: email, Password: password, Otp: "0000-wrong"})
		assert.Equal(t, 401, status)
	})

	t.Run("Просроченный код", func(t *testing.T) {
		require.NoError(t, st.SaveOtp(email, "9999", time.Now().Add(-time.Minute)))
		_, status := login(t, controllers.LoginRequest{Email: email, Password: password, Otp: "9999"})
		assert.Equal(t, 401, status)
	})

	t.Run("Код одноразовый", func(t *testing.T) {
		code := sendOtp(t)

		// Верный код, но неверный пароль: код сгорает
		_, status := login(t, controllers.LoginRequest{Email: email, Password: "wrong-password", Otp: code})
		assert.Equal(t, 401, status)

		// Повторное использование того же кода уже не проходит
		_, status = login(t, controllers.LoginRequest{Email: email, Password: password, Otp: code})
		assert.Equal(t, 401, status)
	})

	t.Run("Успешный вход", func(t *testing.T) {
		code := sendOtp(t)
		response, status := login(t, controllers.LoginRequest{Email: email, Password: password, Otp: code})
		assert.Equal(t, 200, status)
		assert.True(t, response.Success)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "admin", response.Role)

		// Токен открывает защищенные маршруты
		req := httptest.NewRequest("GET", "/api/locations/", nil)
		req.Header.Set("Authorization", "Bearer "+response.Token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	st := store.NewGormStore(setupTestDB())
	app := setupTestApp(st)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/locations/"},
		{"GET", "/api/items/"},
		{"GET", "/api/stock/"},
		{"GET", "/api/settings/"},
		{"GET", "/api/dashboard/"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode, p.path)
	}

	req := httptest.NewRequest("GET", "/api/locations/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
