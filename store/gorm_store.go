package store

import (
	"errors"
	"sync"
	"time"

	"sklad-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore — хранилище поверх GORM (PostgreSQL или SQLite).
// Мьютекс сериализует последовательности чтение-изменение-запись
// (корректировка остатка, генерация кода товара), чтобы два конкурентных
// запроса не прочитали одно и то же состояние "до".
type GormStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewGormStore создает хранилище поверх подключения к базе данных
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) AddLocation(name, description string) (models.Location, error) {
	location := models.Location{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := g.db.Create(&location).Error; err != nil {
		return models.Location{}, err
	}
	return location, nil
}

// DeleteLocation удаляет склад и каскадно его остатки одной транзакцией,
// чтобы чтение не увидело остаток уже удаленного склада.
// Отсутствующий идентификатор — успешный no-op.
func (g *GormStore) DeleteLocation(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("location_id = ?", id).Delete(&models.Stock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, "id = ?", id).Error
	})
}

func (g *GormStore) ListLocations() ([]models.Location, error) {
	var locations []models.Location
	err := g.db.Order("created_at ASC, id ASC").Find(&locations).Error
	return locations, err
}

func (g *GormStore) AddItem(name, description string, minQuantity int) (models.Item, error) {
	// Генерация кода сканирует все товары, поэтому выполняется под мьютексом
	g.mu.Lock()
	defer g.mu.Unlock()

	var items []models.Item
	if err := g.db.Find(&items).Error; err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		ID:          uuid.NewString(),
		ItemCode:    NextItemCode(items),
		Name:        name,
		Description: description,
		MinQuantity: minQuantity,
		CreatedAt:   time.Now(),
	}
	if err := g.db.Create(&item).Error; err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (g *GormStore) DeleteItem(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&models.Stock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, "id = ?", id).Error
	})
}

func (g *GormStore) ListItems() ([]models.Item, error) {
	var items []models.Item
	err := g.db.Order("created_at ASC, id ASC").Find(&items).Error
	return items, err
}

// AdjustQuantity изменяет остаток пары (склад, товар) на delta.
// Условие current_quantity + delta >= 0 продублировано в WHERE, так что
// инвариант неотрицательности держится и на уровне базы данных.
func (g *GormStore) AdjustQuantity(locationID, itemID string, delta int) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var stock models.Stock
	err := g.db.Where("location_id = ? AND item_id = ?", locationID, itemID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if delta < 0 {
			return 0, ErrNegativeQuantity
		}
		stock = models.Stock{LocationID: locationID, ItemID: itemID, CurrentQuantity: delta}
		if err := g.db.Create(&stock).Error; err != nil {
			return 0, err
		}
		return stock.CurrentQuantity, nil
	}
	if err != nil {
		return 0, err
	}

	candidate := stock.CurrentQuantity + delta
	if candidate < 0 {
		return stock.CurrentQuantity, ErrNegativeQuantity
	}

	res := g.db.Model(&models.Stock{}).
		Where("location_id = ? AND item_id = ? AND current_quantity + ? >= 0", locationID, itemID, delta).
		Update("current_quantity", gorm.Expr("current_quantity + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return stock.CurrentQuantity, ErrNegativeQuantity
	}
	return candidate, nil
}

// InitializeRecord создает нулевую запись остатка, если её ещё нет.
// Существующая запись возвращается без изменений.
func (g *GormStore) InitializeRecord(locationID, itemID string) (models.Stock, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var stock models.Stock
	err := g.db.Where("location_id = ? AND item_id = ?", locationID, itemID).First(&stock).Error
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Stock{}, err
	}

	stock = models.Stock{LocationID: locationID, ItemID: itemID, CurrentQuantity: 0}
	if err := g.db.Create(&stock).Error; err != nil {
		return models.Stock{}, err
	}
	return stock, nil
}

func (g *GormStore) ListStock() ([]models.Stock, error) {
	var stock []models.Stock
	err := g.db.Order("id ASC").Find(&stock).Error
	return stock, err
}

func (g *GormStore) GetAdmin(email string) (*models.Admin, error) {
	var admin models.Admin
	err := g.db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (g *GormStore) EnsureAdmin(admin models.Admin) error {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	return g.db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error
}

func (g *GormStore) SaveOtp(email, code string, expiresAt time.Time) error {
	otp := models.OtpCode{Email: email, Code: code, ExpiresAt: expiresAt}
	return g.db.Save(&otp).Error
}

func (g *GormStore) GetOtp(email string) (*models.OtpCode, error) {
	var otp models.OtpCode
	err := g.db.Where("email = ?", email).First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (g *GormStore) DeleteOtp(email string) error {
	return g.db.Delete(&models.OtpCode{}, "email = ?", email).Error
}

func (g *GormStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := g.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Settings{}, nil
	}
	return settings, err
}

func (g *GormStore) UpdateSettings(settings models.Settings) error {
	settings.ID = 1
	return g.db.Save(&settings).Error
}
