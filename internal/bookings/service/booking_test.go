package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	bookingserrors "booker/internal/bookings/errors"
	"booker/internal/bookings/validator"
	apperrors "booker/pkg/errors"
	"booker/pkg/logger"
	"booker/pkg/model"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingRepository struct {
	mu        sync.Mutex
	created   []*model.Booking
	createErr error
	findAllFn func(ctx context.Context) ([]*model.Booking, error)
}

func (m *mockBookingRepository) Create(_ context.Context, booking *model.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = gofakeit.UUID()
	m.created = append(m.created, booking)
	return nil
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

type mockPublisher struct {
	published []*model.Booking
	err       error
}

func (m *mockPublisher) PublishBookingCreated(_ context.Context, booking *model.Booking) error {
	m.published = append(m.published, booking)
	return m.err
}

func (m *mockPublisher) Close() error { return nil }

func newTestService(repo *mockBookingRepository, pub *mockPublisher) (BookingService, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Format: logger.LINE, Output: &buf})
	return NewBookingService(repo, validator.NewBookingValidator(log), pub, log), &buf
}

func fakeRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Service: gofakeit.RandomString([]string{"Haircut", "Massage", "Manicure"}),
		Date:    gofakeit.FutureDate().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func TestCreate_StoresAndPublishes(t *testing.T) {
	repo := &mockBookingRepository{}
	pub := &mockPublisher{}
	svc, logs := newTestService(repo, pub)
	req := fakeRequest()

	booking, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, req.Name, booking.Name)
	assert.Equal(t, req.Email, booking.Email)
	require.Len(t, repo.created, 1)
	require.Len(t, pub.published, 1)
	assert.Equal(t, booking.ID, pub.published[0].ID)
	assert.Contains(t, logs.String(), "[INFO]: Booking created booking.id="+booking.ID)
}

func TestCreate_SanitizesInput(t *testing.T) {
	repo := &mockBookingRepository{}
	svc, _ := newTestService(repo, &mockPublisher{})

	booking, err := svc.Create(context.Background(), &model.BookingRequest{
		Name:    "  Ann   Smith ",
		Email:   " Ann@X.com ",
		Service: "Hair\tcut",
		Date:    " 2024-05-01 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", booking.Name)
	assert.Equal(t, "Ann@X.com", booking.Email)
	assert.Equal(t, "Hair cut", booking.Service)
	assert.Equal(t, "2024-05-01T00:00:00Z", booking.Date.Format("2006-01-02T15:04:05Z07:00"))
}

func TestCreate_ValidationFailure(t *testing.T) {
	repo := &mockBookingRepository{}
	pub := &mockPublisher{}
	svc, logs := newTestService(repo, pub)
	req := fakeRequest()
	req.Email = "   "

	booking, err := svc.Create(context.Background(), req)

	assert.Nil(t, booking)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Contains(t, appErr.Description(), "email is required")
	assert.Empty(t, repo.created)
	assert.Empty(t, pub.published)
	assert.Contains(t, logs.String(), "[ERROR]: Error creating booking")
}

func TestCreate_WriteFailure(t *testing.T) {
	repo := &mockBookingRepository{createErr: errors.New("Document failed validation")}
	pub := &mockPublisher{}
	svc, _ := newTestService(repo, pub)

	_, err := svc.Create(context.Background(), fakeRequest())

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeWriteFailed, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
	assert.Equal(t, "Document failed validation", appErr.Description())
	assert.Empty(t, pub.published)
}

func TestCreate_StorageUnavailable(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{createErr: bookingserrors.ErrStorageUnavailable}, &mockPublisher{})

	_, err := svc.Create(context.Background(), fakeRequest())

	assert.ErrorIs(t, err, bookingserrors.ErrStorageUnavailable)
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).StatusCode())
}

func TestCreate_PublishFailureIsNotFatal(t *testing.T) {
	repo := &mockBookingRepository{}
	svc, logs := newTestService(repo, &mockPublisher{err: errors.New("broker down")})

	booking, err := svc.Create(context.Background(), fakeRequest())

	require.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Len(t, repo.created, 1)
	assert.Contains(t, logs.String(), "[WARN]: Failed to publish booking event")
}

func TestCreate_DuplicatesAllowed(t *testing.T) {
	repo := &mockBookingRepository{}
	svc, _ := newTestService(repo, &mockPublisher{})
	req := fakeRequest()

	first, err := svc.Create(context.Background(), &model.BookingRequest{Name: req.Name, Email: req.Email, Service: req.Service, Date: req.Date})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &model.BookingRequest{Name: req.Name, Email: req.Email, Service: req.Service, Date: req.Date})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.created, 2)
}

func TestGetAll_NeverNil(t *testing.T) {
	svc, _ := newTestService(&mockBookingRepository{}, &mockPublisher{})

	bookings, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestGetAll_ReadFailure(t *testing.T) {
	repo := &mockBookingRepository{findAllFn: func(context.Context) ([]*model.Booking, error) {
		return nil, errors.New("connection reset")
	}}
	svc, logs := newTestService(repo, &mockPublisher{})

	bookings, err := svc.GetAll(context.Background())

	assert.Nil(t, bookings)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeReadFailed, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Contains(t, logs.String(), "[ERROR]: Error retrieving bookings error=\"connection reset\"")
}

func TestGetAll_ConcurrentAccess(t *testing.T) {
	stored := []*model.Booking{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bob"}}
	repo := &mockBookingRepository{findAllFn: func(context.Context) ([]*model.Booking, error) {
		return stored, nil
	}}
	svc, _ := newTestService(repo, &mockPublisher{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bookings, err := svc.GetAll(context.Background())
			assert.NoError(t, err)
			assert.Len(t, bookings, 2)
		}()
	}
	wg.Wait()
}
