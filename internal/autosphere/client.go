// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package autosphere

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taibuivan/aidash/internal/gateway"
)

// # Display messages

const (
	FallbackChat          = "Failed to get response"
	FallbackCreateBooking = "Failed to create booking"
	FallbackSearch        = "Search failed"
	FallbackGetBooking    = "Booking not found"

	MsgBookingFieldsRequired = "Name, phone, and vehicle model are required"
)

// Client issues AutoSphere API calls through the gateway.
type Client struct {
	gateway *gateway.Gateway
}

// NewClient wraps the gateway.
func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gateway: gw}
}

// Chat sends one message with the transcript that preceded it.
func (client *Client) Chat(ctx context.Context, request ChatRequest) (ChatReply, error) {
	return gateway.Call[ChatReply](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathChat,
		JSON:   request,
	}, FallbackChat)
}

// CreateBooking stores a new booking.
func (client *Client) CreateBooking(ctx context.Context, booking BookingCreate) (Booking, error) {
	return gateway.Call[Booking](ctx, client.gateway, gateway.Request{
		Method: http.MethodPost,
		Path:   PathBookings,
		JSON:   booking,
	}, FallbackCreateBooking)
}

// SearchBookings lists bookings matching every non-empty filter.
func (client *Client) SearchBookings(ctx context.Context, query BookingQuery) ([]Booking, error) {
	return gateway.Call[[]Booking](ctx, client.gateway, gateway.Request{
		Method: http.MethodGet,
		Path:   PathBookings,
		Query:  query.values(),
	}, FallbackSearch)
}

// GetBooking fetches one booking by its display ID.
func (client *Client) GetBooking(ctx context.Context, bookingID string) (Booking, error) {
	return gateway.Call[Booking](ctx, client.gateway, gateway.Request{
		Method: http.MethodGet,
		Path:   PathBookings + "/" + url.PathEscape(bookingID),
	}, FallbackGetBooking)
}

func (query BookingQuery) values() url.Values {
	values := url.Values{}
	if query.BookingID != "" {
		values.Set("booking_id", query.BookingID)
	}
	if query.Phone != "" {
		values.Set("phone", query.Phone)
	}
	if query.BookingType != "" {
		values.Set("booking_type", string(query.BookingType))
	}
	return values
}
