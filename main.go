package main

import (
	"os"
	"strings"
	"time"

	"sklad-backend/controllers"
	"sklad-backend/models"
	"sklad-backend/routes"
	"sklad-backend/services"
	"sklad-backend/store"
	"sklad-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()
	log := utils.GetLogger()

	// Выбор хранилища: база данных или память
	st := initStore(log)

	// Создание администратора по умолчанию и стартовых настроек
	seedDefaults(st, log)

	// Создание Fiber приложения
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// CORS настройки
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Инициализация WebSocket хаба
	hub := services.NewHub(log)
	go hub.Run()

	mailer := services.NewMailerFromEnv()
	analyst := services.NewAnalystFromEnv()

	// Инициализация контроллеров
	authController := controllers.NewAuthController(st, mailer)
	locationController := controllers.NewLocationController(st)
	itemController := controllers.NewItemController(st)
	stockController := controllers.NewStockController(st, hub, mailer, analyst)
	settingsController := controllers.NewSettingsController(st)
	dashboardController := controllers.NewDashboardController(st)

	// Настройка маршрутов
	routes.SetupAuthRoutes(app, authController)
	routes.SetupLocationRoutes(app, locationController)
	routes.SetupItemRoutes(app, itemController)
	routes.SetupStockRoutes(app, stockController)
	routes.SetupSettingsRoutes(app, settingsController)
	routes.SetupDashboardRoutes(app, dashboardController)

	// WebSocket маршрут для живых обновлений дашборда
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	// Общий health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Sklad Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Запуск сервера
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Info("Сервер запускается", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Сервер остановлен", zap.Error(err))
	}
}

// initStore подключает базу данных, а при её недоступности
// переключается на хранилище в памяти
func initStore(log *zap.Logger) store.Store {
	if os.Getenv("STORE") == "memory" {
		log.Warn("STORE=memory: используется хранилище в памяти")
		return store.NewMemoryStore()
	}

	db, err := models.InitDB()
	if err != nil {
		log.Warn("База данных недоступна, используется хранилище в памяти", zap.Error(err))
		return store.NewMemoryStore()
	}

	if err := db.AutoMigrate(
		&models.Location{},
		&models.Item{},
		&models.Stock{},
		&models.Admin{},
		&models.OtpCode{},
		&models.Settings{},
	); err != nil {
		log.Warn("Миграция не выполнена, используется хранилище в памяти", zap.Error(err))
		return store.NewMemoryStore()
	}

	return store.NewGormStore(db)
}

// seedDefaults создает администратора по умолчанию и стартовые настройки
func seedDefaults(st store.Store, log *zap.Logger) {
	adminEmail := os.Getenv("DEFAULT_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@sklad.local"
	}
	// Вход ищет администратора по email в нижнем регистре,
	// поэтому нормализуем значение уже при создании
	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	adminPassword := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Не удалось захэшировать пароль администратора", zap.Error(err))
	}
	if err := st.EnsureAdmin(models.Admin{
		Email:        adminEmail,
		Role:         "admin",
		PasswordHash: hash,
	}); err != nil {
		log.Fatal("Не удалось создать администратора", zap.Error(err))
	}

	settings, err := st.GetSettings()
	if err != nil {
		log.Fatal("Не удалось прочитать настройки", zap.Error(err))
	}
	if settings.AdminEmail == "" {
		settings.AdminEmail = adminEmail
		if settings.OrganizationName == "" {
			settings.OrganizationName = "Система учета складских остатков"
		}
		if err := st.UpdateSettings(settings); err != nil {
			log.Fatal("Не удалось сохранить настройки", zap.Error(err))
		}
	}

	log.Info("Администратор по умолчанию готов", zap.String("email", adminEmail))
}
