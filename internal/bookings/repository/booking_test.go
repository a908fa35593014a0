package repository

import (
	"context"
	"testing"
	"time"

	bookingserrors "booker/internal/bookings/errors"
	"booker/pkg/config"
	"booker/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testConfig() *config.Config {
	return &config.Config{
		MongoOpTimeout: time.Second,
	}
}

func TestMongoBookingRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and creation time", func(mt *mtest.T) {
		repo := NewMongoBookingRepository(testConfig(), mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		booking := &model.Booking{
			Name:    "Ann",
			Email:   "ann@x.com",
			Service: "Haircut",
			Date:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		}
		require.NoError(mt, repo.Create(context.Background(), booking))

		assert.True(mt, primitive.IsValidObjectID(booking.ID))
		assert.False(mt, booking.CreatedAt.IsZero())
	})

	mt.Run("dates truncated to storage precision", func(mt *mtest.T) {
		repo := NewMongoBookingRepository(testConfig(), mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		booking := &model.Booking{
			Name:    "Ann",
			Email:   "ann@x.com",
			Service: "Haircut",
			Date:    time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC),
		}
		require.NoError(mt, repo.Create(context.Background(), booking))

		assert.Equal(mt, time.Date(2024, 5, 1, 10, 0, 0, 123000000, time.UTC), booking.Date)
		assert.Zero(mt, booking.CreatedAt.Nanosecond()%int(time.Millisecond))
	})

	mt.Run("write rejected by storage", func(mt *mtest.T) {
		repo := NewMongoBookingRepository(testConfig(), mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		booking := &model.Booking{Name: "Ann"}
		err := repo.Create(context.Background(), booking)

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "Document failed validation")
		assert.Empty(mt, booking.ID)
	})
}

func TestMongoBookingRepository_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns documents in storage order", func(mt *mtest.T) {
		repo := NewMongoBookingRepository(testConfig(), mt.DB)
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		ns := mt.DB.Name() + "." + CollectionName

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Ann"}, {Key: "email", Value: "ann@x.com"}, {Key: "service", Value: "Haircut"}, {Key: "date", Value: date}},
			bson.D{{Key: "_id", Value: second}, {Key: "name", Value: "Bob"}, {Key: "email", Value: "bob@x.com"}, {Key: "service", Value: "Shave"}, {Key: "date", Value: date}},
		))

		bookings, err := repo.FindAll(context.Background())

		require.NoError(mt, err)
		require.Len(mt, bookings, 2)
		assert.Equal(mt, first.Hex(), bookings[0].ID)
		assert.Equal(mt, "Ann", bookings[0].Name)
		assert.Equal(mt, "Bob", bookings[1].Name)
		assert.True(mt, bookings[1].Date.Equal(date))
	})

	mt.Run("empty collection yields empty slice", func(mt *mtest.T) {
		repo := NewMongoBookingRepository(testConfig(), mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+CollectionName, mtest.FirstBatch))

		bookings, err := repo.FindAll(context.Background())

		require.NoError(mt, err)
		assert.NotNil(mt, bookings)
		assert.Empty(mt, bookings)
	})

	mt.Run("read failure", func(mt *mtest.T) {
		repo := NewMongoBookingRepository(testConfig(), mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on bookings",
		}))

		bookings, err := repo.FindAll(context.Background())

		require.Error(mt, err)
		assert.Nil(mt, bookings)
		assert.Contains(mt, err.Error(), "failed to find bookings")
	})
}

func TestUnavailableBookingRepository(t *testing.T) {
	repo := NewUnavailableBookingRepository()

	assert.ErrorIs(t, repo.Create(context.Background(), &model.Booking{}), bookingserrors.ErrStorageUnavailable)

	bookings, err := repo.FindAll(context.Background())
	assert.ErrorIs(t, err, bookingserrors.ErrStorageUnavailable)
	assert.Nil(t, bookings)
}

func TestWithTimeout_KeepsEarlierDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ctx, cancelChild := withTimeout(parent, time.Hour)
	defer cancelChild()

	parentDeadline, _ := parent.Deadline()
	childDeadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, parentDeadline, childDeadline)
}
