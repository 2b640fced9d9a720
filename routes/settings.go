package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupSettingsRoutes настраивает маршруты для системных настроек
func SetupSettingsRoutes(app *fiber.App, settingsController *controllers.SettingsController) {
	api := app.Group("/api/settings", utils.AuthMiddleware)

	api.Get("/", settingsController.GetSettings)
	api.Put("/", settingsController.UpdateSettings)
}
