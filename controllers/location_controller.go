package controllers

import (
	"strings"

	"sklad-backend/store"

	"github.com/gofiber/fiber/v2"
)

// LocationController контроллер для управления складами
type LocationController struct {
	store store.Store
}

// NewLocationController создает новый экземпляр LocationController
func NewLocationController(s store.Store) *LocationController {
	return &LocationController{store: s}
}

// CreateLocationRequest структура запроса создания склада
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetLocations возвращает все склады в порядке создания
func (lc *LocationController) GetLocations(c *fiber.Ctx) error {
	locations, err := lc.store.ListLocations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении списка складов",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    locations,
	})
}

// CreateLocation создает новый склад
func (lc *LocationController) CreateLocation(c *fiber.Ctx) error {
	var req CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Неверный формат данных",
		})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Название склада обязательно",
		})
	}

	location, err := lc.store.AddLocation(strings.TrimSpace(req.Name), strings.TrimSpace(req.Description))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при создании склада",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    location,
	})
}

// DeleteLocation удаляет склад вместе с его остатками.
// Повторное удаление того же ID — успешный no-op.
func (lc *LocationController) DeleteLocation(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := lc.store.DeleteLocation(id); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при удалении склада",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Склад удален",
	})
}
