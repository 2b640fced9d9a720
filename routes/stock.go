package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupStockRoutes настраивает маршруты для остатков
func SetupStockRoutes(app *fiber.App, stockController *controllers.StockController) {
	api := app.Group("/api/stock", utils.AuthMiddleware)

	// GET /api/stock - страница остатков с фильтрами и поиском
	api.Get("/", stockController.GetStock)

	// POST /api/stock/adjust - корректировка остатка на delta
	api.Post("/adjust", stockController.AdjustStock)

	// POST /api/stock/alert - рассылка сводки по низким остаткам
	api.Post("/alert", stockController.SendLowStockAlert)
}
