package controllers

import (
	"os"
	"strconv"
	"strings"
	"time"

	"sklad-backend/services"
	"sklad-backend/store"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthController контроллер для входа администратора по OTP
type AuthController struct {
	store  store.Store
	mailer *services.Mailer
}

// NewAuthController создает новый экземпляр AuthController
func NewAuthController(s store.Store, mailer *services.Mailer) *AuthController {
	return &AuthController{store: s, mailer: mailer}
}

// SendOtpRequest структура запроса отправки кода
type SendOtpRequest struct {
	Email string `json:"email"`
}

// LoginRequest структура запроса входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Otp      string `json:"otp"`
}

// AuthResponse структура ответа аутентификации
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Role    string `json:"role,omitempty"`
	Emailed bool   `json:"emailed,omitempty"`
}

func otpTTL() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("OTP_TTL_MS"))
	if err != nil || ms <= 0 {
		ms = 180000
	}
	return time.Duration(ms) * time.Millisecond
}

// SendOtp генерирует одноразовый код и отправляет его на email администратора
func (ac *AuthController) SendOtp(c *fiber.Ctx) error {
	var req SendOtpRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Требуется email",
		})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := ac.store.GetAdmin(email)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при поиске администратора",
		})
	}
	if admin == nil || admin.Role != "admin" {
		return c.Status(403).JSON(AuthResponse{
			Success: false,
			Message: "Доступ запрещен",
		})
	}

	code, err := utils.GenerateOtp()
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при генерации кода",
		})
	}

	ttl := otpTTL()
	if err := ac.store.SaveOtp(email, code, time.Now().Add(ttl)); err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при сохранении кода",
		})
	}

	mailed := false
	if ac.mailer != nil && ac.mailer.Enabled() {
		if err := ac.mailer.SendOtpEmail(email, code, ttl); err != nil {
			utils.GetLogger().Error("Не удалось отправить письмо с кодом", zap.Error(err))
		} else {
			mailed = true
		}
	}

	utils.GetLogger().Info("Сгенерирован одноразовый код",
		zap.String("email", email),
		zap.Duration("ttl", ttl),
		zap.Bool("emailed", mailed))

	return c.JSON(AuthResponse{
		Success: true,
		Message: "Код отправлен на email администратора",
		Emailed: mailed,
	})
}

// Login проверяет email, пароль и одноразовый код и выдает JWT токен
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Неверный формат данных",
		})
	}
	if req.Email == "" || req.Password == "" || req.Otp == "" {
		return c.Status(400).JSON(AuthResponse{
			Success: false,
			Message: "Требуются email, пароль и код",
		})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := ac.store.GetAdmin(email)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при поиске администратора",
		})
	}
	if admin == nil || admin.Role != "admin" {
		return c.Status(403).JSON(AuthResponse{
			Success: false,
			Message: "Доступ запрещен",
		})
	}

	otp, err := ac.store.GetOtp(email)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при проверке кода",
		})
	}
	if otp == nil || otp.Code != req.Otp || otp.Expired(time.Now()) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Неверный или просроченный код",
		})
	}

	// Код одноразовый: удаляем сразу после совпадения, до проверки пароля
	if err := ac.store.DeleteOtp(email); err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при проверке кода",
		})
	}

	if !utils.CheckPassword(req.Password, admin.PasswordHash) {
		return c.Status(401).JSON(AuthResponse{
			Success: false,
			Message: "Неверные учетные данные",
		})
	}

	token, err := utils.GenerateJWT(admin.Email, admin.Role)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{
			Success: false,
			Message: "Ошибка при создании токена",
		})
	}

	return c.JSON(AuthResponse{
		Success: true,
		Message: "Вход выполнен",
		Token:   token,
		Role:    admin.Role,
	})
}
