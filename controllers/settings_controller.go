package controllers

import (
	"sklad-backend/models"
	"sklad-backend/store"

	"github.com/gofiber/fiber/v2"
)

// SettingsController контроллер для системных настроек
type SettingsController struct {
	store store.Store
}

// NewSettingsController создает новый экземпляр SettingsController
func NewSettingsController(s store.Store) *SettingsController {
	return &SettingsController{store: s}
}

// UpdateSettingsRequest структура запроса обновления настроек
type UpdateSettingsRequest struct {
	AlertEmail       string `json:"alert_email"`
	OrganizationName string `json:"organization_name"`
	AdminEmail       string `json:"admin_email"`
}

// GetSettings возвращает текущие настройки
func (stc *SettingsController) GetSettings(c *fiber.Ctx) error {
	settings, err := stc.store.GetSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении настроек",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    settings,
	})
}

// UpdateSettings обновляет настройки целиком
func (stc *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Неверный формат данных",
		})
	}

	settings := models.Settings{
		AlertEmail:       req.AlertEmail,
		OrganizationName: req.OrganizationName,
		AdminEmail:       req.AdminEmail,
	}
	if err := stc.store.UpdateSettings(settings); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при сохранении настроек",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    settings,
	})
}
