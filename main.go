package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopapi/internal/handlers"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"
	"shopapi/pkg/rabbitmq"
)

func init() {
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "shop.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()
}

// openDatabase opens the configured GORM store and migrates the schema.
func openDatabase() (*gorm.DB, error) {
	driver := viper.GetString("DATABASE_DRIVER")
	dsn := viper.GetString("DATABASE_DSN")

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// NewApp wires repositories, services and handlers into a Fiber app.
// publisher may be nil, in which case order events are skipped.
func NewApp(publisher services.EventPublisher) (*fiber.App, error) {
	db, err := openDatabase()
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	cartService := services.NewCartService(userRepo, productRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, publisher)

	userHandler := handlers.NewUserHandler(authService, cartService)
	productHandler := handlers.NewProductHandler(authService, productService)
	orderHandler := handlers.NewOrderHandler(authService, orderService)

	app := fiber.New()
	app.Use(logger.New())

	userHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)
	orderHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Promote a configured account to admin on boot. Intended for the first
	// deployment; a no-op when the account does not exist yet.
	if account := viper.GetString("ADMIN_ACCOUNT"); account != "" {
		if user, err := userRepo.GetByAccount(account); err == nil && !user.IsAdmin() {
			user.Role = models.RoleAdmin
			if err := userRepo.Save(user); err != nil {
				log.Printf("Failed to promote admin account %s: %v", account, err)
			} else {
				log.Printf("Promoted account %s to admin", account)
			}
		}
	}

	return app, nil
}

func main() {
	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	var mqClient *rabbitmq.Client
	var publisher services.EventPublisher
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	app, err := NewApp(publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if err := mqClient.ConsumeOrderEvents(messageHandler); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
