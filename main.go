package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := openDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Comment{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The broker is optional: without it the store still serves requests,
	// it just skips order events.
	var publisher services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
	} else {
		defer mqClient.Close()
		publisher = mqClient
	}

	// Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	seedProducts(productRepo)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, publisher)
	commentService := services.NewCommentService(commentRepo, productRepo, userRepo)

	// Handlers
	userHandler := handlers.NewUserHandler(authService, userService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	commentHandler := handlers.NewCommentHandler(commentService)

	app := fiber.New()
	app.Use(logger.New())

	auth := middleware.AuthRequired(authService)
	api := app.Group("/api")
	userHandler.RegisterRoutes(api, auth)
	productHandler.RegisterRoutes(api, auth)
	orderHandler.RegisterRoutes(api, auth)
	commentHandler.RegisterRoutes(api, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received order event %s: %s", msg.RoutingKey, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// openDatabase picks the GORM driver from the DSN shape: anything that
// looks like a PostgreSQL DSN uses the postgres driver, everything else
// is treated as an SQLite path.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// seedProducts populates an empty catalog with some initial data.
func seedProducts(repo repositories.ProductRepository) {
	existing, err := repo.GetAll()
	if err != nil || len(existing) > 0 {
		return
	}

	products := []models.Product{
		{Name: "Laptop", Description: "High performance laptop", Price: decimal.NewFromFloat(1200.00), Available: 10, Category: "electronics"},
		{Name: "Keyboard", Description: "Mechanical keyboard", Price: decimal.NewFromFloat(75.00), Available: 25, Category: "electronics"},
		{Name: "Mouse", Description: "Ergonomic wireless mouse", Price: decimal.NewFromFloat(25.00), Available: 50, Category: "electronics"},
		{Name: "Desk Lamp", Description: "Adjustable LED desk lamp", Price: decimal.NewFromFloat(39.99), Available: 30, Category: "home"},
	}
	for i := range products {
		if err := repo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Name, products[i].ID)
		}
	}
}
