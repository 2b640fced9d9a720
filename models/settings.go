package models

// Settings представляет системные настройки (единственная строка)
type Settings struct {
	ID               uint   `json:"-" gorm:"primaryKey"`
	AlertEmail       string `json:"alert_email" gorm:"size:255;default:''"`
	OrganizationName string `json:"organization_name" gorm:"size:255;default:''"`
	AdminEmail       string `json:"admin_email" gorm:"size:255;default:''"`
}
