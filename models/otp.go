package models

import "time"

// OtpCode представляет одноразовый код для входа администратора.
// На каждый email хранится не более одного актуального кода.
type OtpCode struct {
	Email     string    `json:"email" gorm:"primaryKey;size:255"`
	Code      string    `json:"-" gorm:"not null;size:16"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}

// Expired сообщает, истёк ли срок действия кода
func (o *OtpCode) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
