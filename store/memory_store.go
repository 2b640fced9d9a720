package store

import (
	"sync"
	"time"

	"sklad-backend/models"

	"github.com/google/uuid"
)

// MemoryStore хранит все данные в памяти процесса. Используется как
// запасной вариант, когда база данных недоступна, и в тестах.
type MemoryStore struct {
	mu        sync.RWMutex
	locations []models.Location
	items     []models.Item
	stock     []models.Stock
	admins    map[string]models.Admin
	otps      map[string]models.OtpCode
	settings  models.Settings
}

// NewMemoryStore создает пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins: make(map[string]models.Admin),
		otps:   make(map[string]models.OtpCode),
	}
}

func (m *MemoryStore) AddLocation(name, description string) (models.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	location := models.Location{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	m.locations = append(m.locations, location)
	return location, nil
}

// DeleteLocation удаляет склад и каскадно все его записи остатков.
// Отсутствующий идентификатор — успешный no-op.
func (m *MemoryStore) DeleteLocation(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.locations[:0]
	for _, l := range m.locations {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.locations = kept

	keptStock := m.stock[:0]
	for _, s := range m.stock {
		if s.LocationID != id {
			keptStock = append(keptStock, s)
		}
	}
	m.stock = keptStock
	return nil
}

func (m *MemoryStore) ListLocations() ([]models.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Location, len(m.locations))
	copy(out, m.locations)
	return out, nil
}

func (m *MemoryStore) AddItem(name, description string, minQuantity int) (models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item := models.Item{
		ID:          uuid.NewString(),
		ItemCode:    NextItemCode(m.items),
		Name:        name,
		Description: description,
		MinQuantity: minQuantity,
		CreatedAt:   time.Now(),
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *MemoryStore) DeleteItem(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, i := range m.items {
		if i.ID != id {
			kept = append(kept, i)
		}
	}
	m.items = kept

	keptStock := m.stock[:0]
	for _, s := range m.stock {
		if s.ItemID != id {
			keptStock = append(keptStock, s)
		}
	}
	m.stock = keptStock
	return nil
}

func (m *MemoryStore) ListItems() ([]models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

// AdjustQuantity изменяет остаток пары (склад, товар) на delta.
// Отсутствующая запись трактуется как нулевой остаток: отрицательная delta
// отклоняется без создания записи, неотрицательная создает запись.
func (m *MemoryStore) AdjustQuantity(locationID, itemID string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for idx := range m.stock {
		if m.stock[idx].LocationID != locationID || m.stock[idx].ItemID != itemID {
			continue
		}
		candidate := m.stock[idx].CurrentQuantity + delta
		if candidate < 0 {
			return m.stock[idx].CurrentQuantity, ErrNegativeQuantity
		}
		m.stock[idx].CurrentQuantity = candidate
		return candidate, nil
	}

	if delta < 0 {
		return 0, ErrNegativeQuantity
	}
	m.stock = append(m.stock, models.Stock{
		LocationID:      locationID,
		ItemID:          itemID,
		CurrentQuantity: delta,
	})
	return delta, nil
}

// InitializeRecord создает нулевую запись остатка, если её ещё нет.
// Существующая запись возвращается без изменений.
func (m *MemoryStore) InitializeRecord(locationID, itemID string) (models.Stock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.stock {
		if s.LocationID == locationID && s.ItemID == itemID {
			return s, nil
		}
	}

	stock := models.Stock{LocationID: locationID, ItemID: itemID, CurrentQuantity: 0}
	m.stock = append(m.stock, stock)
	return stock, nil
}

func (m *MemoryStore) ListStock() ([]models.Stock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Stock, len(m.stock))
	copy(out, m.stock)
	return out, nil
}

func (m *MemoryStore) GetAdmin(email string) (*models.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admin, ok := m.admins[email]
	if !ok {
		return nil, nil
	}
	return &admin, nil
}

func (m *MemoryStore) EnsureAdmin(admin models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.admins[admin.Email]; ok {
		return nil
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	m.admins[admin.Email] = admin
	return nil
}

func (m *MemoryStore) SaveOtp(email, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.otps[email] = models.OtpCode{Email: email, Code: code, ExpiresAt: expiresAt}
	return nil
}

func (m *MemoryStore) GetOtp(email string) (*models.OtpCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	otp, ok := m.otps[email]
	if !ok {
		return nil, nil
	}
	return &otp, nil
}

func (m *MemoryStore) DeleteOtp(email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.otps, email)
	return nil
}

func (m *MemoryStore) GetSettings() (models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.settings, nil
}

func (m *MemoryStore) UpdateSettings(settings models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings.ID = 1
	m.settings = settings
	return nil
}
