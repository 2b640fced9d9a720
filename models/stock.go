package models

// Stock представляет остаток товара на конкретном складе.
// На пару (location_id, item_id) существует не более одной записи;
// суррогатный ключ сохраняет порядок вставки при выборках.
type Stock struct {
	ID              uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	LocationID      string `json:"location_id" gorm:"size:64;not null;uniqueIndex:ux_stock_location_item"`
	ItemID          string `json:"item_id" gorm:"size:64;not null;uniqueIndex:ux_stock_location_item"`
	CurrentQuantity int    `json:"current_quantity" gorm:"not null;default:0"`
}

// StockView представляет запись остатка, обогащённую данными каталога.
// Вычисляется при каждом чтении и нигде не хранится.
type StockView struct {
	LocationID      string `json:"location_id"`
	ItemID          string `json:"item_id"`
	CurrentQuantity int    `json:"current_quantity"`
	LocationName    string `json:"location_name"`
	ItemName        string `json:"item_name"`
	ItemCode        string `json:"item_code"`
	MinQuantity     int    `json:"min_quantity"`
	IsLowStock      bool   `json:"is_low_stock"`
}
