package store

import (
	"time"

	"smartpark/internal/domain"
)

// BookingState caches the current user's bookings.
type BookingState struct {
	Bookings    []domain.Booking
	IsLoading   bool
	Error       string
	LastUpdated time.Time
}

func reduceBooking(s BookingState, ev Event) BookingState {
	switch e := ev.(type) {
	case BookingsRequested:
		s.IsLoading = true
		s.Error = ""
	case BookingsLoaded:
		s.IsLoading = false
		s.Error = ""
		s.Bookings = e.Bookings
		s.LastUpdated = timeNow().UTC()
	case BookingsFailed:
		s.IsLoading = false
		s.Error = e.Reason
	case BookingUpserted:
		s.Bookings = upsertBooking(s.Bookings, e.Booking)
		s.LastUpdated = timeNow().UTC()
	case AuthCleared:
		s = BookingState{}
	}
	return s
}

func upsertBooking(bookings []domain.Booking, b domain.Booking) []domain.Booking {
	for i, existing := range bookings {
		if existing.ID == b.ID {
			out := append([]domain.Booking(nil), bookings...)
			out[i] = b
			return out
		}
	}
	return append(append([]domain.Booking(nil), bookings...), b)
}
