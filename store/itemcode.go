package store

import (
	"fmt"
	"strconv"
	"strings"

	"sklad-backend/models"
)

const itemCodePrefix = "ITEM-"

// NextItemCode вычисляет следующий код товара как максимальный числовой
// суффикс по всем существующим товарам плюс один. Коды удалённых товаров
// не переиспользуются, потому что максимум считается по текущему набору,
// а не по счётчику.
func NextItemCode(items []models.Item) string {
	maxNum := 0
	for _, item := range items {
		if !strings.HasPrefix(item.ItemCode, itemCodePrefix) {
			continue
		}
		num, err := strconv.Atoi(item.ItemCode[len(itemCodePrefix):])
		if err == nil && num > maxNum {
			maxNum = num
		}
	}
	return fmt.Sprintf("%s%05d", itemCodePrefix, maxNum+1)
}
