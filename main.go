package main

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"inventory/internal/config"
	"inventory/internal/handlers"
	"inventory/internal/logging"
	"inventory/internal/middleware"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/validation"
	"inventory/internal/views"
	"inventory/pkg/rabbitmq"
)

// appDeps is everything the HTTP layer needs from the outside.
type appDeps struct {
	service  handlers.ProductService
	health   handlers.HealthCheck
	gatherer prometheus.Gatherer
	log      *logrus.Logger
}

// newApp builds the Fiber app with both product surfaces and the system routes.
func newApp(deps appDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "inventory",
		Views:        views.NewEngine(),
		ErrorHandler: handlers.ErrorHandler(deps.log),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(deps.log))

	validate := validation.New()

	handlers.NewProductAPIHandler(deps.service, validate, deps.log).RegisterRoutes(app.Group("/api"))
	handlers.NewProductViewHandler(deps.service, validate).RegisterRoutes(app)
	handlers.NewSystemHandler(deps.health, deps.gatherer, deps.log).RegisterRoutes(app)

	return app
}

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up logging")
	}

	// --- Database ---
	db, err := repositories.OpenDatabase(cfg.DBDriver, cfg.DatabaseDSN, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	if err := repositories.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}
	log.WithField("driver", cfg.DBDriver).Info("Database ready")

	// --- Product events (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.EventsEnabled() {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		publisher = mqClient
		log.WithField("queue", cfg.RabbitMQQueue).Info("Publishing product events")
	}

	// --- Services ---
	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, log, services.NewMetrics(prometheus.DefaultRegisterer), publisher)

	if cfg.SeedData {
		n, err := productService.SeedProducts(context.Background())
		if err != nil {
			log.WithError(err).Fatal("Failed to seed products")
		}
		log.WithField("count", n).Info("Seeded products")
	}

	app := newApp(appDeps{
		service:  productService,
		health:   func(ctx context.Context) error { return repositories.Ping(ctx, db) },
		gatherer: prometheus.DefaultGatherer,
		log:      log,
	})

	go func() {
		log.WithField("addr", cfg.AppPort).Info("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Info("Shutting down server")
				return app.ShutdownWithContext(ctx)
			},
		},
	)
	exitCode := <-wait

	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.WithError(err).Warn("Failed to close RabbitMQ client")
		}
	}
	if err := repositories.Close(db); err != nil {
		log.WithError(err).Warn("Failed to close database")
	}

	log.WithField("exit_code", exitCode).Info("Server stopped")
	os.Exit(exitCode)
}
