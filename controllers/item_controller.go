package controllers

import (
	"strings"

	"sklad-backend/store"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ItemController контроллер для управления каталогом товаров
type ItemController struct {
	store store.Store
}

// NewItemController создает новый экземпляр ItemController
func NewItemController(s store.Store) *ItemController {
	return &ItemController{store: s}
}

// CreateItemRequest структура запроса создания товара
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinQuantity int    `json:"min_quantity"`
}

// GetItems возвращает все товары в порядке создания
func (ic *ItemController) GetItems(c *fiber.Ctx) error {
	items, err := ic.store.ListItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении списка товаров",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

// CreateItem создает товар и заводит нулевые записи остатков
// по всем существующим складам. Двухшаговый контракт: сначала товар,
// затем инициализация остатков — выполняется здесь, на стороне вызывающего.
func (ic *ItemController) CreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Неверный формат данных",
		})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Название товара обязательно",
		})
	}
	if req.MinQuantity < 0 {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Минимальный остаток не может быть отрицательным",
		})
	}

	item, err := ic.store.AddItem(strings.TrimSpace(req.Name), strings.TrimSpace(req.Description), req.MinQuantity)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при создании товара",
		})
	}

	locations, err := ic.store.ListLocations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при инициализации остатков",
		})
	}
	for _, location := range locations {
		if _, err := ic.store.InitializeRecord(location.ID, item.ID); err != nil {
			utils.GetLogger().Error("Не удалось инициализировать запись остатка",
				zap.String("location_id", location.ID),
				zap.String("item_id", item.ID),
				zap.Error(err))
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    item,
	})
}

// DeleteItem удаляет товар вместе с его остатками.
// Повторное удаление того же ID — успешный no-op.
func (ic *ItemController) DeleteItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ic.store.DeleteItem(id); err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при удалении товара",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Товар удален",
	})
}
