package main

import (
	"errors"
	"sync"
	"testing"

	"sklad-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentDecrementRace(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			location, err := ts.store.AddLocation("Склад", "")
			require.NoError(t, err)
			item, err := ts.store.AddItem("Радио", "", 0)
			require.NoError(t, err)

			_, err = ts.store.AdjustQuantity(location.ID, item.ID, 1)
			require.NoError(t, err)

			// Два конкурентных списания из остатка 1:
			// ровно одно проходит, второе отклоняется
			results := make(chan error, 2)
			var wg sync.WaitGroup
			for i := 0; i < 2; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := ts.store.AdjustQuantity(location.ID, item.ID, -1)
					results <- err
				}()
			}
			wg.Wait()
			close(results)

			succeeded, rejected := 0, 0
			for err := range results {
				if err == nil {
					succeeded++
				} else if errors.Is(err, store.ErrNegativeQuantity) {
					rejected++
				} else {
					t.Fatalf("неожиданная ошибка: %v", err)
				}
			}
			assert.Equal(t, 1, succeeded)
			assert.Equal(t, 1, rejected)

			stock, err := ts.store.ListStock()
			require.NoError(t, err)
			require.Len(t, stock, 1)
			assert.Equal(t, 0, stock[0].CurrentQuantity)
		})
	}
}

func TestConcurrentIncrementsNoLostUpdates(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			location, err := ts.store.AddLocation("Склад", "")
			require.NoError(t, err)
			item, err := ts.store.AddItem("Конусы", "", 0)
			require.NoError(t, err)

			_, err = ts.store.InitializeRecord(location.ID, item.ID)
			require.NoError(t, err)

			const workers = 50
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := ts.store.AdjustQuantity(location.ID, item.ID, 1)
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			stock, err := ts.store.ListStock()
			require.NoError(t, err)
			require.Len(t, stock, 1)
			assert.Equal(t, workers, stock[0].CurrentQuantity)
		})
	}
}

func TestConcurrentReadsDuringWrites(t *testing.T) {
	for _, ts := range newTestStores() {
		t.Run(ts.name, func(t *testing.T) {
			location, err := ts.store.AddLocation("Склад", "")
			require.NoError(t, err)
			item, err := ts.store.AddItem("Вода", "", 5)
			require.NoError(t, err)
			_, err = ts.store.AdjustQuantity(location.ID, item.ID, 10)
			require.NoError(t, err)

			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := ts.store.AdjustQuantity(location.ID, item.ID, 1)
					assert.NoError(t, err)
				}()
				wg.Add(1)
				go func() {
					defer wg.Done()
					result, err := store.QueryStock(ts.store, store.StockQuery{Page: 1, PageSize: 100})
					assert.NoError(t, err)
					// Чтение всегда видит согласованную, неотрицательную картину
					for _, view := range result.Data {
						assert.GreaterOrEqual(t, view.CurrentQuantity, 0)
					}
				}()
			}
			wg.Wait()

			stock, err := ts.store.ListStock()
			require.NoError(t, err)
			require.Len(t, stock, 1)
			assert.Equal(t, 20, stock[0].CurrentQuantity)
		})
	}
}
