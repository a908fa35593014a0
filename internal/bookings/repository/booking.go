package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "booker/internal/bookings/errors"
	"booker/pkg/config"
	"booker/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindAll(ctx context.Context) ([]*model.Booking, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config, db *mongo.Database) BookingRepository {
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds ctx by timeout, keeping an earlier deadline if ctx has one.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := withTimeout(ctx, r.cfg.MongoOpTimeout)
	defer cancel()

	booking.ID = ""
	booking.Date = booking.Date.Truncate(time.Millisecond)
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

// FindAll returns every stored booking in storage order.
func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.MongoOpTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*model.Booking, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

type unavailableBookingRepository struct{}

// NewUnavailableBookingRepository serves a process that has no storage client.
// Every call fails with ErrStorageUnavailable.
func NewUnavailableBookingRepository() BookingRepository {
	return unavailableBookingRepository{}
}

func (unavailableBookingRepository) Create(context.Context, *model.Booking) error {
	return bookingserrors.ErrStorageUnavailable
}

func (unavailableBookingRepository) FindAll(context.Context) ([]*model.Booking, error) {
	return nil, bookingserrors.ErrStorageUnavailable
}
