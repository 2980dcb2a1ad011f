// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stubapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/aidash/internal/autosphere"
	"github.com/taibuivan/aidash/internal/platform/apperr"
	"github.com/taibuivan/aidash/pkg/pointer"
	"github.com/taibuivan/aidash/pkg/slice"
	"github.com/taibuivan/aidash/pkg/uuidv7"
)

// BookingPrefix starts every display booking ID.
const BookingPrefix = "BK"

// dateLayout is the wire format of preferred_date.
const dateLayout = "2006-01-02"

type storedBooking struct {
	key     string // UUIDv7, orders bookings by creation
	booking autosphere.Booking
}

// BookingBook is the in-memory booking store.
type BookingBook struct {
	mu       sync.RWMutex
	bookings []storedBooking
	nextID   int
	now      func() time.Time
}

// NewBookingBook creates an empty store with the given clock (nil means time.Now).
func NewBookingBook(now func() time.Time) *BookingBook {
	if now == nil {
		now = time.Now
	}
	return &BookingBook{nextID: 1, now: now}
}

/*
Create stores a booking and returns it with its IDs assigned.

Description: When no preferred date is given, a natural-language request
("tomorrow", "next week", "in 3 days") is resolved against the store's clock.
*/
func (book *BookingBook) Create(input autosphere.BookingCreate) autosphere.Booking {
	book.mu.Lock()
	defer book.mu.Unlock()

	now := book.now()
	key := uuidv7.New()

	preferred := pointer.NonBlank(input.PreferredDate)
	if preferred == nil {
		preferred = resolveDate(pointer.Val(input.NaturalLanguage), now)
	}

	booking := autosphere.Booking{
		ID:            book.nextID,
		BookingID:     uuidv7.DisplayID(BookingPrefix, key),
		BookingType:   input.BookingType,
		Name:          strings.TrimSpace(input.Name),
		Phone:         strings.TrimSpace(input.Phone),
		VehicleModel:  strings.TrimSpace(input.VehicleModel),
		PreferredDate: preferred,
		CreatedAt:     now.UTC().Format(time.RFC3339),
	}
	book.nextID++
	book.bookings = append(book.bookings, storedBooking{key: key, booking: booking})
	return booking
}

// Search returns bookings matching every non-empty filter, newest first.
func (book *BookingBook) Search(query autosphere.BookingQuery) []autosphere.Booking {
	book.mu.RLock()
	defer book.mu.RUnlock()

	matched := slice.Filter(book.bookings, func(stored storedBooking) bool {
		booking := stored.booking
		if query.BookingID != "" && !strings.EqualFold(booking.BookingID, query.BookingID) {
			return false
		}
		if query.Phone != "" && booking.Phone != strings.TrimSpace(query.Phone) {
			return false
		}
		return query.BookingType == "" || booking.BookingType == query.BookingType
	})
	sort.Slice(matched, func(i, j int) bool { return matched[i].key > matched[j].key })

	return slice.Map(matched, func(stored storedBooking) autosphere.Booking { return stored.booking })
}

// Get looks a booking up by display ID.
func (book *BookingBook) Get(bookingID string) (autosphere.Booking, error) {
	book.mu.RLock()
	defer book.mu.RUnlock()

	for _, stored := range book.bookings {
		if strings.EqualFold(stored.booking.BookingID, bookingID) {
			return stored.booking, nil
		}
	}
	return autosphere.Booking{}, apperr.NotFound("Booking")
}

// Len is the number of stored bookings.
func (book *BookingBook) Len() int {
	book.mu.RLock()
	defer book.mu.RUnlock()
	return len(book.bookings)
}

// resolveDate understands a handful of relative phrases; anything else is nil.
func resolveDate(phrase string, now time.Time) *string {
	phrase = strings.ToLower(phrase)
	var days int

	switch {
	case phrase == "":
		return nil
	case strings.Contains(phrase, "today"):
		days = 0
	case strings.Contains(phrase, "tomorrow"):
		days = 1
	case strings.Contains(phrase, "next week"):
		days = 7
	default:
		fields := strings.Fields(phrase)
		found := false
		for i := 0; i+2 < len(fields); i++ {
			if fields[i] != "in" || !strings.HasPrefix(fields[i+2], "day") {
				continue
			}
			if n, ok := smallNumber(fields[i+1]); ok {
				days, found = n, true
				break
			}
		}
		if !found {
			return nil
		}
	}

	return pointer.To(now.AddDate(0, 0, days).Format(dateLayout))
}

func smallNumber(word string) (int, bool) {
	names := map[string]int{"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7}
	if n, ok := names[word]; ok {
		return n, true
	}
	if len(word) == 1 && word[0] >= '1' && word[0] <= '9' {
		return int(word[0] - '0'), true
	}
	return 0, false
}
