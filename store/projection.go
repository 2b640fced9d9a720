package store

import (
	"strings"

	"sklad-backend/models"
)

// StockQuery задает параметры выборки остатков
type StockQuery struct {
	Page       int
	PageSize   int
	LocationID string
	ItemID     string
	Search     string
}

// StockPage — страница обогащённых записей остатков.
// Total — количество строк после фильтрации, до пагинации.
type StockPage struct {
	Data  []models.StockView `json:"data"`
	Total int                `json:"total"`
}

// QueryStock соединяет остатки с каталогом и возвращает страницу представлений.
// Записи, чей склад или товар уже не существует, отбрасываются: каскадное
// удаление синхронно, но фильтр закрывает любое рассогласование. Признак
// низкого остатка пересчитывается при каждом вызове, кэша нет. Функция
// ничего не изменяет.
func QueryStock(s Store, q StockQuery) (StockPage, error) {
	stock, err := s.ListStock()
	if err != nil {
		return StockPage{}, err
	}
	locations, err := s.ListLocations()
	if err != nil {
		return StockPage{}, err
	}
	items, err := s.ListItems()
	if err != nil {
		return StockPage{}, err
	}

	locationByID := make(map[string]models.Location, len(locations))
	for _, l := range locations {
		locationByID[l.ID] = l
	}
	itemByID := make(map[string]models.Item, len(items))
	for _, i := range items {
		itemByID[i.ID] = i
	}

	search := strings.ToLower(q.Search)

	filtered := make([]models.StockView, 0, len(stock))
	for _, st := range stock {
		location, ok := locationByID[st.LocationID]
		if !ok {
			continue
		}
		item, ok := itemByID[st.ItemID]
		if !ok {
			continue
		}
		if q.LocationID != "" && st.LocationID != q.LocationID {
			continue
		}
		if q.ItemID != "" && st.ItemID != q.ItemID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.ItemCode), search) {
			continue
		}
		filtered = append(filtered, models.StockView{
			LocationID:      st.LocationID,
			ItemID:          st.ItemID,
			CurrentQuantity: st.CurrentQuantity,
			LocationName:    location.Name,
			ItemName:        item.Name,
			ItemCode:        item.ItemCode,
			MinQuantity:     item.MinQuantity,
			IsLowStock:      st.CurrentQuantity < item.MinQuantity,
		})
	}

	total := len(filtered)

	page := q.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	if start < 0 || end < start {
		return StockPage{Data: []models.StockView{}, Total: total}, nil
	}

	return StockPage{Data: filtered[start:end], Total: total}, nil
}
