package main

import (
	"sklad-backend/controllers"
	"sklad-backend/models"
	"sklad-backend/routes"
	"sklad-backend/services"
	"sklad-backend/store"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB создает тестовую базу данных в памяти
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	// Одно соединение, чтобы все запросы видели одну и ту же базу в памяти
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	db.AutoMigrate(&models.Location{}, &models.Item{}, &models.Stock{}, &models.Admin{}, &models.OtpCode{}, &models.Settings{})
	return db
}

// testStore именованная реализация хранилища для прогона общих тестов
type testStore struct {
	name  string
	store store.Store
}

// newTestStores возвращает обе реализации хранилища
func newTestStores() []testStore {
	return []testStore{
		{name: "gorm", store: store.NewGormStore(setupTestDB())},
		{name: "memory", store: store.NewMemoryStore()},
	}
}

// setupTestApp создает Fiber приложение со всеми маршрутами поверх хранилища.
// SMTP в тестах не настроен, поэтому письма не отправляются.
func setupTestApp(st store.Store) *fiber.App {
	app := fiber.New()

	mailer := services.NewMailerFromEnv()
	analyst := services.NewAnalystFromEnv()

	authController := controllers.NewAuthController(st, mailer)
	locationController := controllers.NewLocationController(st)
	itemController := controllers.NewItemController(st)
	stockController := controllers.NewStockController(st, nil, mailer, analyst)
	settingsController := controllers.NewSettingsController(st)
	dashboardController := controllers.NewDashboardController(st)

	routes.SetupAuthRoutes(app, authController)
	routes.SetupLocationRoutes(app, locationController)
	routes.SetupItemRoutes(app, itemController)
	routes.SetupStockRoutes(app, stockController)
	routes.SetupSettingsRoutes(app, settingsController)
	routes.SetupDashboardRoutes(app, dashboardController)

	return app
}

// createTestAdmin создает тестового администратора и возвращает его данные
func createTestAdmin(st store.Store) (string, string) {
	email := "admin@test.com"
	password := "password123"

	hash, _ := utils.HashPassword(password)
	st.EnsureAdmin(models.Admin{
		Email:        email,
		Role:         "admin",
		PasswordHash: hash,
	})
	return email, password
}

// adminAuthHeader возвращает заголовок Authorization для тестового администратора
func adminAuthHeader() string {
	token, _ := utils.GenerateJWT("admin@test.com", "admin")
	return "Bearer " + token
}
