package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupItemRoutes настраивает маршруты для каталога товаров
func SetupItemRoutes(app *fiber.App, itemController *controllers.ItemController) {
	api := app.Group("/api/items", utils.AuthMiddleware)

	api.Get("/", itemController.GetItems)
	api.Post("/", itemController.CreateItem)
	api.Delete("/:id", itemController.DeleteItem)
}
