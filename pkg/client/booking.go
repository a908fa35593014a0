package client

import (
	"context"
	"encoding/json"
	"fmt"

	"booker/pkg/model"
)

const bookingsPath = "/api/bookings"

// BookingClient talks to the bookings API over HTTP.
type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *BookingClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, bookingsPath, body)
}

func (c *BookingClient) CreateRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, bookingsPath, rawBody)
}

func (c *BookingClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, bookingsPath)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	env, err := resp.Envelope()
	if err != nil {
		return nil, err
	}

	var booking model.Booking
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking: %w (data: %s)", err, env.Data)
	}
	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]model.Booking, error) {
	env, err := resp.Envelope()
	if err != nil {
		return nil, err
	}

	var bookings []model.Booking
	if err := json.Unmarshal(env.Data, &bookings); err != nil {
		return nil, fmt.Errorf("could not decode bookings: %w (data: %s)", err, env.Data)
	}
	return bookings, nil
}
