package main

import (
	"fmt"
	"testing"

	"sklad-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowStockDerivation(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			location, err := ts.store.AddLocation("Склад", "")
			require.NoError(t, err)
			item, err := ts.store.AddItem("Аптечка", "", 10)
			require.NoError(t, err)

			_, err = ts.store.AdjustQuantity(location.ID, item.ID, 7)
			require.NoError(t, err)

			result, err := store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 10})
			require.NoError(t, err)
			require.Len(t, result.Data, 1)
			assert.True(t, result.Data[0].IsLowStock)
			assert.Equal(t, 10, result.Data[0].MinQuantity)
			assert.Equal(t, location.ID, result.Data[0].LocationID)
			assert.Equal(t, "Склад", result.Data[0].LocationName)
			assert.Equal(t, "Аптечка", result.Data[0].ItemName)

			// Граница строгая: остаток, равный минимуму, низким не считается
			_, err = ts.store.AdjustQuantity(location.ID, item.ID, 3)
			require.NoError(t, err)

			result, err = store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 10})
			require.NoError(t, err)
			require.Len(t, result.Data, 1)
			assert.False(t, result.Data[0].IsLowStock)
		})
	}
}

func TestPaginationWithLocationFilter(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			l1, err := ts.store.AddLocation("Склад 1", "")
			require.NoError(t, err)
			l2, err := ts.store.AddLocation("Склад 2", "")
			require.NoError(t, err)

			// 25 записей: 15 на первом складе, 10 на втором
			var l1Items []string
			for i := 0; i < 15; i++ {
				item, err := ts.store.AddItem(fmt.Sprintf("Товар %02d", i+1), "", 0)
				require.NoError(t, err)
				l1Items = append(l1Items, item.ID)
				_, err = ts.store.AdjustQuantity(l1.ID, item.ID, i+1)
				require.NoError(t, err)
			}
			for i := 0; i < 10; i++ {
				item, err := ts.store.AddItem(fmt.Sprintf("Товар B%02d", i+1), "", 0)
				require.NoError(t, err)
				_, err = ts.store.AdjustQuantity(l2.ID, item.ID, i+1)
				require.NoError(t, err)
			}

			result, err := store.QueryStock(ts.store, store.StockQuery{
				Page:       2,
				PageSize:   10,
				LocationID: l1.ID,
			})
			require.NoError(t, err)

			// Вторая страница: строки 11-15, total считается до пагинации
			assert.Equal(t, 15, result.Total)
			require.Len(t, result.Data, 5)
			for i, view := range result.Data {
				assert.Equal(t, l1Items[10+i], view.ItemID)
				assert.Equal(t, l1.ID, view.LocationID)
			}

			// Страница за пределами данных пуста, total прежний
			empty, err := store.QueryStock(ts.store, store.StockQuery{
				Page:       4,
				PageSize:   10,
				LocationID: l1.ID,
			})
			require.NoError(t, err)
			assert.Empty(t, empty.Data)
			assert.Equal(t, 15, empty.Total)
		})
	}
}

func TestSearchFilter(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			location, err := ts.store.AddLocation("Склад", "")
			require.NoError(t, err)

			gloves, err := ts.store.AddItem("Перчатки рабочие", "", 0)
			require.NoError(t, err)
			bucket, err := ts.store.AddItem("Ведро", "", 0)
			require.NoError(t, err)

			_, err = ts.store.AdjustQuantity(location.ID, gloves.ID, 1)
			require.NoError(t, err)
			_, err = ts.store.AdjustQuantity(location.ID, bucket.ID, 1)
			require.NoError(t, err)

			// Поиск по подстроке названия без учета регистра
			result, err := store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 10, Search: "ПЕРЧ"})
			require.NoError(t, err)
			require.Len(t, result.Data, 1)
			assert.Equal(t, gloves.ID, result.Data[0].ItemID)
			assert.Equal(t, 1, result.Total)

			// Поиск по коду товара
			result, err = store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 10, Search: "item-00002"})
			require.NoError(t, err)
			require.Len(t, result.Data, 1)
			assert.Equal(t, bucket.ID, result.Data[0].ItemID)

			// Фильтр по товару поверх поиска
			result, err = store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 10, ItemID: bucket.ID, Search: "перчатки"})
			require.NoError(t, err)
			assert.Empty(t, result.Data)
			assert.Equal(t, 0, result.Total)
		})
	}
}

func TestOrphanSuppression(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			location, err := ts.store.AddLocation("Склад", "")
			require.NoError(t, err)
			item, err := ts.store.AddItem("Снеки", "", 0)
			require.NoError(t, err)

			_, err = ts.store.AdjustQuantity(location.ID, item.ID, 5)
			require.NoError(t, err)

			// Мутация ключуется только идентификаторами, поэтому запись
			// с несуществующим товаром создать можно
			_, err = ts.store.AdjustQuantity(location.ID, "deleted-item-id", 3)
			require.NoError(t, err)

			stock, err := ts.store.ListStock()
			require.NoError(t, err)
			assert.Len(t, stock, 2)

			// Осиротевшая запись не попадает ни в данные, ни в total
			result, err := store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 10})
			require.NoError(t, err)
			require.Len(t, result.Data, 1)
			assert.Equal(t, item.ID, result.Data[0].ItemID)
			assert.Equal(t, 1, result.Total)
		})
	}
}
