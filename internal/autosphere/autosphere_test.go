// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package autosphere_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/gateway"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/session"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func envelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": success, "message": message}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(body)
}

func newClient(t *testing.T, handler http.HandlerFunc) *autosphere.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(session.NewMemoryArea(), quietLogger())
	gw := gateway.New(&config.Client{APIBaseURL: server.URL, APITimeout: 5 * time.Second}, store, quietLogger())
	return autosphere.NewClient(gw)
}

/*
TestChatPanel_HistoryExcludesCurrentMessage checks what the assistant receives.
*/
func TestChatPanel_HistoryExcludesCurrentMessage(t *testing.T) {
	var requests []autosphere.ChatRequest
	chat := autosphere.NewChatPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var request autosphere.ChatRequest
		_ = json.NewDecoder(r.Body).Decode(&request)
		requests = append(requests, request)
		envelope(w, 200, true, "ok", autosphere.ChatReply{Response: "echo " + request.Message, BookingFlow: request.Message == "book"})
	}), quietLogger())
	ctx := context.Background()

	require.NoError(t, chat.Send(ctx, "hello"))
	require.NoError(t, chat.Send(ctx, "book"))
	require.NoError(t, chat.Send(ctx, "   "))

	require.Len(t, requests, 2)
	assert.Empty(t, requests[0].ChatHistory)
	assert.Equal(t, []autosphere.ChatMessage{
		{Role: autosphere.ChatRoleUser, Content: "hello"},
		{Role: autosphere.ChatRoleAssistant, Content: "echo hello"},
	}, requests[1].ChatHistory)

	state := chat.Snapshot()
	assert.Len(t, state.Data.Messages, 4)
	assert.True(t, state.Data.BookingFlow)

	chat.Clear()
	assert.Empty(t, chat.Snapshot().Data.Messages)
	assert.False(t, chat.Snapshot().Data.BookingFlow)
}

/*
TestChatPanel_FailureKeepsUserMessage and the next send clears the error.
*/
func TestChatPanel_FailureKeepsUserMessage(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	chat := autosphere.NewChatPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			envelope(w, 500, false, "", nil)
			return
		}
		envelope(w, 200, true, "ok", autosphere.ChatReply{Response: "hi"})
	}), quietLogger())
	ctx := context.Background()

	require.Error(t, chat.Send(ctx, "hello"))
	state := chat.Snapshot()
	assert.Equal(t, autosphere.FallbackChat, state.Error)
	assert.Equal(t, []autosphere.ChatMessage{{Role: autosphere.ChatRoleUser, Content: "hello"}}, state.Data.Messages)

	fail.Store(false)
	require.NoError(t, chat.Send(ctx, "again"))
	assert.Empty(t, chat.Snapshot().Error)
	assert.Len(t, chat.Snapshot().Data.Messages, 3)
}

/*
TestBookingsPanel_CreatePrepends and validates required fields.
*/
func TestBookingsPanel_CreatePrepends(t *testing.T) {
	var next atomic.Int32
	bookings := autosphere.NewBookingsPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body autosphere.BookingCreate
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := int(next.Add(1))
		envelope(w, 201, true, "Booking created successfully!", autosphere.Booking{
			ID: id, BookingID: "BK-" + body.Name, BookingType: body.BookingType, Name: body.Name, Phone: body.Phone, VehicleModel: body.VehicleModel,
		})
	}), quietLogger())
	ctx := context.Background()

	err := bookings.Create(ctx, autosphere.BookingCreate{Name: "Ann", Phone: " "})
	require.Error(t, err)
	assert.Equal(t, autosphere.MsgBookingFieldsRequired, bookings.Snapshot().Error)

	require.NoError(t, bookings.Create(ctx, autosphere.BookingCreate{Name: "Ann", Phone: "1", VehicleModel: "Model S"}))
	require.NoError(t, bookings.Create(ctx, autosphere.BookingCreate{Name: "Bob", Phone: "2", VehicleModel: "Model 3", BookingType: autosphere.BookingTestDrive}))

	state := bookings.Snapshot()
	require.Len(t, state.Data.Bookings, 2)
	assert.Equal(t, "BK-Bob", state.Data.Bookings[0].BookingID)
	assert.Equal(t, autosphere.BookingService, state.Data.Bookings[1].BookingType)
	assert.Empty(t, state.Error)
}

/*
TestBookingsPanel_SearchAndOpen sends only non-empty filters.
*/
func TestBookingsPanel_SearchAndOpen(t *testing.T) {
	bookings := autosphere.NewBookingsPanel(newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case autosphere.PathBookings:
			assert.Equal(t, "booking_type=Test+Drive&phone=555", r.URL.RawQuery)
			envelope(w, 200, true, "ok", []autosphere.Booking{{BookingID: "BK-1", BookingType: autosphere.BookingTestDrive}})
		case autosphere.PathBookings + "/BK-1":
			envelope(w, 200, true, "ok", autosphere.Booking{BookingID: "BK-1", BookingType: autosphere.BookingTestDrive, Name: "Ann"})
		default:
			envelope(w, 404, false, "Booking not found", nil)
		}
	}), quietLogger())
	ctx := context.Background()

	require.NoError(t, bookings.Search(ctx, autosphere.BookingQuery{Phone: "555", BookingType: autosphere.BookingTestDrive}))
	require.NoError(t, bookings.Open(ctx, "BK-1"))

	state := bookings.Snapshot()
	require.NotNil(t, state.Data.Selected)
	assert.Equal(t, "Ann", state.Data.Selected.Name)

	require.Error(t, bookings.Open(ctx, "BK-404"))
	assert.Equal(t, "Booking not found", bookings.Snapshot().Error)
	assert.Len(t, bookings.Snapshot().Data.Bookings, 1)
}

/*
TestBookingType_Closed rejects unknown kinds.
*/
func TestBookingType_Closed(t *testing.T) {
	var booking autosphere.Booking
	assert.Error(t, json.Unmarshal([]byte(`{"booking_type":"Repair"}`), &booking))
	require.NoError(t, json.Unmarshal([]byte(`{"booking_type":"Test Drive"}`), &booking))
	assert.Equal(t, autosphere.BookingTestDrive, booking.BookingType)
}
