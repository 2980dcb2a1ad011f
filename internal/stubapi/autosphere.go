// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/internal/platform/ctxutil"
	"github.com/taibuivan/aidash/internal/platform/middleware"
	requestutil "github.com/taibuivan/aidash/internal/platform/request"
	"github.com/taibuivan/aidash/internal/platform/respond"
	"github.com/taibuivan/aidash/internal/platform/validate"
)

// # Chat Intents

const (
	IntentTestDrive = "test_drive"
	IntentService   = "service"
	IntentBooking   = "booking"
	IntentGeneral   = "general"
)

// DetectIntent classifies a chat message by phrase.
func DetectIntent(message string) string {
	text := strings.ToLower(message)
	switch {
	case strings.Contains(text, "test drive"):
		return IntentTestDrive
	case containsAny(text, "service", "maintenance", "repair", "oil change", "inspection"):
		return IntentService
	case containsAny(text, "book", "appointment", "schedule", "reserve"):
		return IntentBooking
	default:
		return IntentGeneral
	}
}

func containsAny(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// Reply answers one chat turn. Every intent except general starts the booking flow.
func Reply(request autosphere.ChatRequest) autosphere.ChatReply {
	intent := DetectIntent(request.Message)

	var response string
	switch intent {
	case IntentTestDrive:
		response = "### Test Drive\nI can arrange a **test drive** for you. Please share your **name**, **phone** and the **vehicle model** you would like to try."
	case IntentService:
		response = "### Service Appointment\nLet's get your vehicle looked at. Please share your **name**, **phone** and **vehicle model**, and a preferred date if you have one."
	case IntentBooking:
		response = "I can help with a booking. Would you like a **service** appointment or a **test drive**?"
	default:
		response = "Welcome to AutoSphere Motors! I can answer questions about our vehicles or help you book a **service** or a **test drive**."
		if len(request.ChatHistory) > 0 {
			response = fmt.Sprintf("Thanks, noted. Is there anything else I can help with? (%d earlier messages in this conversation)", len(request.ChatHistory))
		}
	}

	return autosphere.ChatReply{Response: response, Intent: intent, BookingFlow: intent != IntentGeneral}
}

// # Handler

// AutoSphereHandler implements the AutoSphere Motors endpoints.
type AutoSphereHandler struct {
	bookings *BookingBook
	logger   *slog.Logger
}

// NewAutoSphereHandler constructs a new [AutoSphereHandler].
func NewAutoSphereHandler(bookings *BookingBook, logger *slog.Logger) *AutoSphereHandler {
	return &AutoSphereHandler{bookings: bookings, logger: logger}
}

// Routes returns a [chi.Router] configured with AutoSphere routes.
//
// # Endpoints
//   - POST /chat                 : one assistant turn
//   - POST /bookings             : create a booking
//   - GET  /bookings             : search (booking_id, phone, booking_type)
//   - GET  /bookings/{bookingID} : fetch one booking
func (handler *AutoSphereHandler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/chat", handler.chat)
	router.Route("/bookings", func(bookings chi.Router) {
		bookings.Post("/", handler.createBooking)
		bookings.Get("/", handler.searchBookings)
		bookings.Get("/{bookingID}", handler.getBooking)
	})

	return router
}

// chat handles POST /api/autosphere/chat.
func (handler *AutoSphereHandler) chat(writer http.ResponseWriter, request *http.Request) {
	var input autosphere.ChatRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := (&validate.Validator{}).RequiredMsg("message", input.Message, "Message is required").FirstErr(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reply := Reply(input)
	respond.OK(writer, "OK", reply)
}

// bookingInput is the decoded create body; booking_type is optional here.
type bookingInput struct {
	BookingType     string  `json:"booking_type"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	VehicleModel    string  `json:"vehicle_model"`
	PreferredDate   *string `json:"preferred_date"`
	NaturalLanguage *string `json:"natural_language"`
}

// createBooking handles POST /api/autosphere/bookings.
func (handler *AutoSphereHandler) createBooking(writer http.ResponseWriter, request *http.Request) {

	// ── 1. Payload Extraction ─────────────────────────────────────────────
	var input bookingInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.BookingType == "" {
		input.BookingType = string(autosphere.BookingService)
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		Required("name", input.Name).
		Required("phone", input.Phone).
		Required("vehicle_model", input.VehicleModel).
		OneOf("booking_type", input.BookingType, string(autosphere.BookingService), string(autosphere.BookingTestDrive))
	if validator.HasErrors() {
		respond.Error(writer, request, validator.Err())
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────
	booking := handler.bookings.Create(autosphere.BookingCreate{
		BookingType:     autosphere.BookingType(input.BookingType),
		Name:            input.Name,
		Phone:           input.Phone,
		VehicleModel:    input.VehicleModel,
		PreferredDate:   input.PreferredDate,
		NaturalLanguage: input.NaturalLanguage,
	})
	ctxutil.LoggerOr(request.Context(), handler.logger).InfoContext(request.Context(), "booking_created",
		slog.String("booking_id", booking.BookingID),
		slog.String("booking_type", string(booking.BookingType)),
	)

	// ── 4. Presentation Output ────────────────────────────────────────────
	respond.Created(writer, "Booking created successfully!", booking)
}

// searchBookings handles GET /api/autosphere/bookings.
func (handler *AutoSphereHandler) searchBookings(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	query := autosphere.BookingQuery{
		BookingID: strings.TrimSpace(params.Get("booking_id")),
		Phone:     strings.TrimSpace(params.Get("phone")),
	}
	if raw := params.Get("booking_type"); raw != "" {
		bookingType, err := autosphere.ParseBookingType(raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Unknown booking type"))
			return
		}
		query.BookingType = bookingType
	}

	found := handler.bookings.Search(query)
	respond.OK(writer, fmt.Sprintf("%d booking(s) found", len(found)), found)
}

// getBooking handles GET /api/autosphere/bookings/{bookingID}.
func (handler *AutoSphereHandler) getBooking(writer http.ResponseWriter, request *http.Request) {
	booking, err := handler.bookings.Get(requestutil.Param(request, "bookingID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "OK", booking)
}
