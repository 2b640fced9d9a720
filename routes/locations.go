package routes

import (
	"sklad-backend/controllers"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupLocationRoutes настраивает маршруты для складов
func SetupLocationRoutes(app *fiber.App, locationController *controllers.LocationController) {
	api := app.Group("/api/locations", utils.AuthMiddleware)

	api.Get("/", locationController.GetLocations)
	api.Post("/", locationController.CreateLocation)
	api.Delete("/:id", locationController.DeleteLocation)
}
