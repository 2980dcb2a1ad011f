// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package autosphere

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/aidash/internal/panel"
	"github.com/taibuivan/aidash/internal/platform/apperr"
)

// # Chat

// Transcript is the chat panel's data.
type Transcript struct {
	Messages    []ChatMessage
	BookingFlow bool
}

// ChatPanel is the AutoSphere assistant conversation.
type ChatPanel struct {
	client *Client
	*panel.Panel[Transcript]
}

// NewChatPanel creates an empty conversation.
func NewChatPanel(client *Client, logger *slog.Logger) *ChatPanel {
	return &ChatPanel{client: client, Panel: panel.New[Transcript]("chat", logger)}
}

/*
Send posts one user message.

Description: A blank message is ignored. The user message joins the
transcript as the request leaves; chat_history is the transcript before it.
A success appends the assistant reply and records the booking flow flag.
*/
func (chat *ChatPanel) Send(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}

	return panel.Apply(ctx, chat.Panel, panel.Action[Transcript, ChatReply]{
		Before: func(current Transcript) Transcript {
			current.Messages = appendMessage(current.Messages, ChatMessage{Role: ChatRoleUser, Content: message})
			return current
		},
		Call: func(ctx context.Context, previous Transcript) (ChatReply, error) {
			return chat.client.Chat(ctx, ChatRequest{Message: message, ChatHistory: previous.Messages})
		},
		Commit: func(current Transcript, reply ChatReply) Transcript {
			current.Messages = appendMessage(current.Messages, ChatMessage{Role: ChatRoleAssistant, Content: reply.Response})
			current.BookingFlow = reply.BookingFlow
			return current
		},
		Fallback:   FallbackChat,
		ClearError: true,
	})
}

// Clear empties the transcript, the booking flow flag and the error.
func (chat *ChatPanel) Clear() {
	chat.Reset()
}

// appendMessage never writes into a backing array a snapshot may share.
func appendMessage(messages []ChatMessage, message ChatMessage) []ChatMessage {
	out := make([]ChatMessage, len(messages), len(messages)+1)
	copy(out, messages)
	return append(out, message)
}

// # Bookings

// BookingList is the bookings panel's data.
type BookingList struct {
	Bookings []Booking
	Selected *Booking

	// Created is the booking the last create returned.
	Created *Booking
}

// BookingsPanel creates, searches and opens bookings.
type BookingsPanel struct {
	client *Client
	*panel.Panel[BookingList]
}

// NewBookingsPanel creates an empty bookings panel.
func NewBookingsPanel(client *Client, logger *slog.Logger) *BookingsPanel {
	return &BookingsPanel{client: client, Panel: panel.New[BookingList]("bookings", logger)}
}

// Create requires name, phone and vehicle model; the new booking goes to the top of the list.
func (bookings *BookingsPanel) Create(ctx context.Context, booking BookingCreate) error {
	return panel.Apply(ctx, bookings.Panel, panel.Action[BookingList, Booking]{
		Validate: func(BookingList) error {
			if strings.TrimSpace(booking.Name) == "" || strings.TrimSpace(booking.Phone) == "" || strings.TrimSpace(booking.VehicleModel) == "" {
				return apperr.ValidationError(MsgBookingFieldsRequired)
			}
			return nil
		},
		Call: func(ctx context.Context, _ BookingList) (Booking, error) {
			if booking.BookingType == "" {
				booking.BookingType = BookingService
			}
			return bookings.client.CreateBooking(ctx, booking)
		},
		Commit: func(current BookingList, created Booking) BookingList {
			list := make([]Booking, 0, len(current.Bookings)+1)
			list = append(list, created)
			current.Bookings = append(list, current.Bookings...)
			current.Created = &created
			return current
		},
		Fallback: FallbackCreateBooking,
	})
}

// Search replaces the list with the matching bookings.
func (bookings *BookingsPanel) Search(ctx context.Context, query BookingQuery) error {
	return panel.Apply(ctx, bookings.Panel, panel.Action[BookingList, []Booking]{
		Call: func(ctx context.Context, _ BookingList) ([]Booking, error) {
			return bookings.client.SearchBookings(ctx, query)
		},
		Commit: func(current BookingList, found []Booking) BookingList {
			current.Bookings = found
			return current
		},
		Fallback: FallbackSearch,
	})
}

// Open selects one booking by its display ID.
func (bookings *BookingsPanel) Open(ctx context.Context, bookingID string) error {
	return panel.Apply(ctx, bookings.Panel, panel.Action[BookingList, Booking]{
		Validate: func(BookingList) error {
			if strings.TrimSpace(bookingID) == "" {
				return apperr.ValidationError("Booking ID is required")
			}
			return nil
		},
		Call: func(ctx context.Context, _ BookingList) (Booking, error) {
			return bookings.client.GetBooking(ctx, bookingID)
		},
		Commit: func(current BookingList, booking Booking) BookingList {
			current.Selected = &booking
			return current
		},
		Fallback: FallbackGetBooking,
	})
}
