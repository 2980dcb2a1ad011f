// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package autosphere holds the AutoSphere Motors panels: the AI chat and
// service / test drive bookings.
package autosphere

import (
	"encoding/json"
	"fmt"
)

// # Endpoints

const (
	PathChat     = "/api/autosphere/chat"
	PathBookings = "/api/autosphere/bookings"
)

// # Chat

// ChatRole is the author of a transcript message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one transcript line.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest is the body of POST /api/autosphere/chat.
type ChatRequest struct {
	Message     string        `json:"message"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`
}

// ChatReply is the data of POST /api/autosphere/chat.
type ChatReply struct {
	Response    string `json:"response"`
	Intent      string `json:"intent,omitempty"`
	BookingFlow bool   `json:"booking_flow,omitempty"`
}

// # Bookings

// BookingType is the closed set of booking kinds.
type BookingType string

const (
	BookingService   BookingType = "Service"
	BookingTestDrive BookingType = "Test Drive"
)

// Valid reports whether t is a known booking type.
func (t BookingType) Valid() bool {
	switch t {
	case BookingService, BookingTestDrive:
		return true
	default:
		return false
	}
}

// ParseBookingType accepts the wire value of a booking type.
func ParseBookingType(value string) (BookingType, error) {
	bookingType := BookingType(value)
	if !bookingType.Valid() {
		return "", fmt.Errorf("autosphere: unknown booking type %q", value)
	}
	return bookingType, nil
}

// UnmarshalJSON rejects unknown booking types.
func (t *BookingType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseBookingType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Booking is a stored booking.
type Booking struct {
	ID            int         `json:"id"`
	BookingID     string      `json:"booking_id"`
	BookingType   BookingType `json:"booking_type"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	VehicleModel  string      `json:"vehicle_model"`
	PreferredDate *string     `json:"preferred_date,omitempty"`
	CreatedAt     string      `json:"created_at"`
}

// BookingCreate is the body of POST /api/autosphere/bookings.
type BookingCreate struct {
	BookingType     BookingType `json:"booking_type"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	VehicleModel    string      `json:"vehicle_model"`
	PreferredDate   *string     `json:"preferred_date,omitempty"`
	NaturalLanguage *string     `json:"natural_language,omitempty"`
}

// BookingQuery filters GET /api/autosphere/bookings. Empty fields are omitted.
type BookingQuery struct {
	BookingID   string
	Phone       string
	BookingType BookingType
}
