package main

import (
	"context"

	"booker/internal/bookings/events"
	"booker/internal/bookings/handler"
	"booker/internal/bookings/repository"
	"booker/internal/bookings/service"
	"booker/internal/bookings/validator"
	"booker/pkg/app"
	"booker/pkg/config"
	"booker/pkg/kafka"
	kafka_config "booker/pkg/kafka/config"
	kafka_middleware "booker/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	defer cfg.Log.CapturePanic()

	cfg.Log.Info("Starting Bookings service")

	// A failed connection is logged and the API keeps serving.
	_ = cfg.SetMongo()

	publisher := initPublisher(cfg)
	bookingService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(readinessProbe(cfg), cfg.Log),
	)
	serverApp.OnShutdown(func(context.Context) {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.OnShutdown(func(context.Context) { cfg.GracefulShutdown() })
	serverApp.Run()
	_ = cfg.Log.Close()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)

	var bookingRepo repository.BookingRepository
	if cfg.Client.Mongo != nil {
		bookingRepo = repository.NewMongoBookingRepository(cfg, cfg.Client.Mongo.Database(cfg.MongoDatabaseName))
	} else {
		cfg.Log.Warn("No MongoDB client, booking requests will fail until restart")
		bookingRepo = repository.NewUnavailableBookingRepository()
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		cfg.Log,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNoopPublisher()
	}
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	return events.NewKafkaPublisher(producer, ServiceName)
}

func readinessProbe(cfg *config.Config) handler.Pinger {
	if cfg.Client.Mongo == nil {
		return nil
	}
	return cfg.Client.Mongo
}
