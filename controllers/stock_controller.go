package controllers

import (
	"errors"
	"math"
	"strconv"

	"sklad-backend/models"
	"sklad-backend/services"
	"sklad-backend/store"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StockController контроллер для остатков: выборка, корректировка, рассылка
type StockController struct {
	store   store.Store
	hub     *services.Hub
	mailer  *services.Mailer
	analyst *services.Analyst
}

// NewStockController создает новый экземпляр StockController
func NewStockController(s store.Store, hub *services.Hub, mailer *services.Mailer, analyst *services.Analyst) *StockController {
	return &StockController{store: s, hub: hub, mailer: mailer, analyst: analyst}
}

// AdjustStockRequest структура запроса корректировки остатка
type AdjustStockRequest struct {
	LocationID string `json:"location_id"`
	ItemID     string `json:"item_id"`
	Delta      int    `json:"delta"`
}

// GetStock возвращает страницу остатков, обогащённых данными каталога
func (sc *StockController) GetStock(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := store.QueryStock(sc.store, store.StockQuery{
		Page:       page,
		PageSize:   pageSize,
		LocationID: c.Query("location_id"),
		ItemID:     c.Query("item_id"),
		Search:     c.Query("search"),
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении остатков",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Data,
		"total":   result.Total,
	})
}

// AdjustStock изменяет остаток на delta. Корректировка, уводящая остаток
// ниже нуля, отклоняется, сохранённое значение не меняется.
func (sc *StockController) AdjustStock(c *fiber.Ctx) error {
	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Неверный формат данных",
		})
	}
	if req.LocationID == "" || req.ItemID == "" {
		return c.Status(400).JSON(fiber.Map{
			"error":   true,
			"message": "Требуются location_id и item_id",
		})
	}

	newQuantity, err := sc.store.AdjustQuantity(req.LocationID, req.ItemID, req.Delta)
	if err != nil {
		if errors.Is(err, store.ErrNegativeQuantity) {
			return c.Status(400).JSON(fiber.Map{
				"error":   true,
				"message": "Остаток не может стать отрицательным",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при изменении остатка",
		})
	}

	sc.broadcastUpdate(req.LocationID, req.ItemID)

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.Stock{
			LocationID:      req.LocationID,
			ItemID:          req.ItemID,
			CurrentQuantity: newQuantity,
		},
	})
}

// broadcastUpdate отправляет обновленное представление записи в WebSocket хаб
func (sc *StockController) broadcastUpdate(locationID, itemID string) {
	if sc.hub == nil {
		return
	}

	result, err := store.QueryStock(sc.store, store.StockQuery{
		Page:       1,
		PageSize:   1,
		LocationID: locationID,
		ItemID:     itemID,
	})
	if err != nil || len(result.Data) == 0 {
		return
	}
	sc.hub.BroadcastStockUpdate(result.Data[0])
}

// SendLowStockAlert собирает все позиции с низким остатком, добавляет в ответ
// аналитическую сводку и отправляет письмо на адрес из настроек
func (sc *StockController) SendLowStockAlert(c *fiber.Ctx) error {
	// Без пагинации: нужна полная выборка, чтобы собрать весь список
	result, err := store.QueryStock(sc.store, store.StockQuery{Page: 1, PageSize: math.MaxInt32})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении остатков",
		})
	}

	lowStock := make([]models.StockView, 0)
	for _, view := range result.Data {
		if view.IsLowStock {
			lowStock = append(lowStock, view)
		}
	}

	if len(lowStock) == 0 {
		return c.JSON(fiber.Map{
			"success":  true,
			"message":  "Позиций с низким остатком нет",
			"count":    0,
			"analysis": sc.analyst.AnalyzeLowStock(c.UserContext(), nil),
		})
	}

	analysis := sc.analyst.AnalyzeLowStock(c.UserContext(), lowStock)

	settings, err := sc.store.GetSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении настроек",
		})
	}
	target := settings.AlertEmail
	if target == "" {
		target = settings.AdminEmail
	}

	mailed := false
	if target != "" && sc.mailer != nil && sc.mailer.Enabled() {
		if err := sc.mailer.SendLowStockAlert(target, lowStock); err != nil {
			utils.GetLogger().Error("Не удалось отправить сводку по остаткам", zap.Error(err))
		} else {
			mailed = true
		}
	}

	utils.GetLogger().Info("Сводка по низким остаткам",
		zap.Int("count", len(lowStock)),
		zap.String("target", target),
		zap.Bool("emailed", mailed))

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Сводка сформирована",
		"count":    len(lowStock),
		"emailed":  mailed,
		"analysis": analysis,
	})
}
