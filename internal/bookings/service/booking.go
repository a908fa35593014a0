package service

import (
	"context"
	"time"

	"booker/internal/bookings/events"
	"booker/internal/bookings/repository"
	"booker/internal/bookings/validator"
	apperrors "booker/pkg/errors"
	"booker/pkg/logger"
	"booker/pkg/model"
	"booker/pkg/sanitizer"
)

const publishTimeout = 3 * time.Second

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	log       *logger.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	log *logger.Logger,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		log:       log,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)
	if err := s.validator.Validate(req); err != nil {
		s.log.Error("Error creating booking", "error", err)
		return nil, apperrors.Validation("Booking validation failed", err)
	}

	booking, err := req.ToBooking()
	if err != nil {
		s.log.Error("Error creating booking", "error", err)
		return nil, apperrors.Validation("Booking validation failed", err)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.log.Error("Error creating booking", "error", err)
		return nil, apperrors.WriteFailed("Failed to create booking", err)
	}

	s.log.Info("Booking created", "booking", booking)
	s.publishCreated(ctx, booking)
	return booking, nil
}

// publishCreated never fails the request: the booking is already stored.
func (s *bookingService) publishCreated(ctx context.Context, booking *model.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishBookingCreated(ctx, booking); err != nil {
		s.log.Warn("Failed to publish booking event", "id", booking.ID, "error", err)
	}
}

func (s *bookingService) GetAll(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Error retrieving bookings", "error", err)
		return nil, apperrors.ReadFailed("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) sanitize(req *model.BookingRequest) {
	if req == nil {
		return
	}
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Service = sanitizer.NormalizeService(req.Service)
	req.Date = sanitizer.TrimAndNormalize(req.Date)
}
