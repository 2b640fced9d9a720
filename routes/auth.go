package routes

import (
	"sklad-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes настраивает маршруты для входа администратора
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/api/admin/auth")

	// POST /api/admin/auth/send-otp - отправка одноразового кода
	auth.Post("/send-otp", authController.SendOtp)

	// POST /api/admin/auth/login - вход по email, паролю и коду
	auth.Post("/login", authController.Login)
}
