package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"katalog/internal/handlers"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

// NewApp builds the Fiber app with middleware, health check, and product
// routes. It is separate from main so tests can compose the app around the
// in-memory repository.
func NewApp(productService *services.ProductService) *fiber.App {
	app := fiber.New()

	app.Use(logger.New()) // Request logger

	apiV1 := app.Group("/api/v1")

	productHandler := handlers.NewProductHandler(productService)
	productHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("MONGO_URI", "") // empty selects the in-memory repository
	viper.SetDefault("MONGO_DB", "katalog")
	viper.SetDefault("MONGO_COLLECTION", "products")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	mongoURI := viper.GetString("MONGO_URI")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize Repository ---
	var productRepo repositories.ProductRepository
	if mongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOpts := options.Client().ApplyURI(mongoURI).
			SetConnectTimeout(5 * time.Second).
			SetServerSelectionTimeout(5 * time.Second)

		mongoClient, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}()

		if err := mongoClient.Ping(ctx, nil); err != nil {
			log.Fatalf("Failed to ping MongoDB: %v", err)
		}

		collection := mongoClient.
			Database(viper.GetString("MONGO_DB")).
			Collection(viper.GetString("MONGO_COLLECTION"))

		productRepo, err = repositories.NewMongoProductRepository(collection)
		if err != nil {
			log.Fatalf("Failed to initialize product repository: %v", err)
		}
		log.Printf("Connected to MongoDB (%s.%s)", viper.GetString("MONGO_DB"), viper.GetString("MONGO_COLLECTION"))
	} else {
		log.Println("MONGO_URI not set, using the in-memory product repository")
		memRepo := repositories.NewMockProductRepository()
		seedProducts(memRepo)
		productRepo = memRepo
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, product event publishing disabled")
	}

	// --- Initialize Service ---
	// A typed nil *rabbitmq.Client inside the interface would not compare
	// equal to nil, so only assign when a client exists.
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	productService := services.NewProductService(productRepo, events)

	// --- Initialize Fiber App ---
	app := NewApp(productService)

	// --- Start RabbitMQ Consumer in a Goroutine ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for product events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received product event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeProductEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedProducts populates the in-memory repository with some initial data so
// the API has something to serve in dev mode.
func seedProducts(repo repositories.ProductRepository) {
	products := []models.Product{
		{Name: "Laptop", Price: 1200.00, Category: "Electronics", Description: "High performance laptop"},
		{Name: "Keyboard", Price: 75.00, Category: "Electronics", Description: "Mechanical keyboard"},
		{Name: "Pen", Price: 1.50, Category: "Office", Description: "Blue ink"},
	}

	for i := range products {
		id, err := repo.Create(context.Background(), &products[i])
		if err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		} else {
			log.Printf("Seeded product: %s (ID: %s)", products[i].Name, id)
		}
	}
}
