package client

import (
	"context"
	"time"

	"booker/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Mongo *mongo.Client
}

func NewClient() *Client {
	return &Client{}
}

// SetMongo opens the shared Mongo client. Connection problems are logged and
// returned; the caller keeps running either way. Mongo stays nil only when the
// driver could not build a client at all (for example a malformed URI).
func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Error("Error connecting to MongoDB", "error", err)
		return err
	}
	c.Mongo = client

	if err := client.Ping(ctx, nil); err != nil {
		log.Error("Error connecting to MongoDB", "error", err)
		return err
	}

	log.Info("Connected to MongoDB")
	return nil
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Mongo.Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect from MongoDB", "error", err)
		return
	}
	log.Info("Disconnected from MongoDB")
}
