package models

import "time"

// Item представляет модель товара в каталоге
type Item struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	ItemCode    string    `json:"item_code" gorm:"not null;size:32;uniqueIndex"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	MinQuantity int       `json:"min_quantity" gorm:"not null;default:0"` // порог низкого остатка
	CreatedAt   time.Time `json:"created_at"`
}
