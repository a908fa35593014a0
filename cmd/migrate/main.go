package main

import (
	"context"
	"time"

	mongoMigration "booker/internal/migrations/mongo"
	"booker/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	defer cfg.Log.CapturePanic()

	cfg.Log.Info("Starting Mongo migration job")
	if err := cfg.SetMongo(); err != nil {
		cfg.Log.Fatal("Migration needs a reachable MongoDB", "error", err)
	}
	defer cfg.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}
