package store

import (
	"time"

	"sklad-backend/models"
)

// Store определяет контракт хранилища данных системы.
// Вся бизнес-логика работает только через этот интерфейс, поэтому выбор
// конкретного хранилища (база данных или память) — вопрос конфигурации при старте.
type Store interface {
	// Каталог: склады
	AddLocation(name, description string) (models.Location, error)
	DeleteLocation(id string) error
	ListLocations() ([]models.Location, error)

	// Каталог: товары
	AddItem(name, description string, minQuantity int) (models.Item, error)
	DeleteItem(id string) error
	ListItems() ([]models.Item, error)

	// Остатки. AdjustQuantity — единственный путь изменения количества:
	// итоговый остаток ниже нуля отклоняется с ErrNegativeQuantity без записи.
	AdjustQuantity(locationID, itemID string, delta int) (int, error)
	InitializeRecord(locationID, itemID string) (models.Stock, error)
	ListStock() ([]models.Stock, error)

	// Администраторы и одноразовые коды
	GetAdmin(email string) (*models.Admin, error)
	EnsureAdmin(admin models.Admin) error
	SaveOtp(email, code string, expiresAt time.Time) error
	GetOtp(email string) (*models.OtpCode, error)
	DeleteOtp(email string) error

	// Системные настройки
	GetSettings() (models.Settings, error)
	UpdateSettings(settings models.Settings) error
}
