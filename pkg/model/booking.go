package model

import (
	"fmt"
	"log/slog"
	"time"
)

// Booking is a persisted service-appointment request. ID and CreatedAt are
// assigned on insert; nothing is changed afterwards.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Service   string    `json:"service" bson:"service"`
	Date      time.Time `json:"date" bson:"date"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (b Booking) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", b.ID),
		slog.String("name", b.Name),
		slog.String("email", b.Email),
		slog.String("service", b.Service),
		slog.Time("date", b.Date),
	)
}

// BookingRequest is the body accepted by the create endpoint. Fields outside
// this shape are dropped during decoding.
type BookingRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Service string `json:"service" validate:"required"`
	Date    string `json:"date" validate:"required,isodate"`
}

// ToBooking builds the record to persist. The request must already be validated.
func (r *BookingRequest) ToBooking() (*Booking, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	return &Booking{
		Name:    r.Name,
		Email:   r.Email,
		Service: r.Service,
		Date:    date,
	}, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate accepts the ISO-8601 forms clients send: full timestamps with or
// without offset, minute precision, or a bare calendar date. Values without an
// offset are taken as UTC.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected an ISO-8601 date", value)
}
