package controllers

import (
	"math"

	"sklad-backend/store"

	"github.com/gofiber/fiber/v2"
)

// DashboardController контроллер для сводки админского дашборда
type DashboardController struct {
	store store.Store
}

// NewDashboardController создает новый экземпляр DashboardController
func NewDashboardController(s store.Store) *DashboardController {
	return &DashboardController{store: s}
}

// GetDashboardData возвращает сводные показатели для Home экрана
func (dc *DashboardController) GetDashboardData(c *fiber.Ctx) error {
	locations, err := dc.store.ListLocations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении данных дашборда",
		})
	}
	items, err := dc.store.ListItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении данных дашборда",
		})
	}

	result, err := store.QueryStock(dc.store, store.StockQuery{Page: 1, PageSize: math.MaxInt32})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   true,
			"message": "Ошибка при получении данных дашборда",
		})
	}

	lowStockCount := 0
	for _, view := range result.Data {
		if view.IsLowStock {
			lowStockCount++
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_locations": len(locations),
			"total_items":     len(items),
			"total_stock":     result.Total,
			"low_stock_count": lowStockCount,
		},
	})
}
