package flow

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smartpark/internal/domain"
	"smartpark/internal/service"
	"smartpark/internal/store"
)

// BookingFlow drives the booking slice through the facade.
type BookingFlow struct {
	store    *store.Store
	bookings *service.BookingService
	logger   *zap.Logger
}

// NewBookingFlow wires the flow.
func NewBookingFlow(st *store.Store, bookings *service.BookingService, logger *zap.Logger) *BookingFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingFlow{store: st, bookings: bookings, logger: logger}
}

// FetchForUser loads the user's bookings.
func (f *BookingFlow) FetchForUser(ctx context.Context, userID string) error {
	f.store.Dispatch(store.BookingsRequested{})

	bookings, err := f.bookings.ListForUser(ctx, userID)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.BookingsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.BookingsLoaded{Bookings: bookings})
	return nil
}

// Create books a slot and merges the confirmation.
func (f *BookingFlow) Create(ctx context.Context, req service.CreateRequest) error {
	f.store.Dispatch(store.BookingsRequested{})

	booking, err := f.bookings.Create(ctx, req)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.BookingsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.BookingUpserted{Booking: booking})
	f.store.Dispatch(store.UpdateRealTimeSlot{SlotID: booking.SlotID, Status: slotStatusFor(booking)})
	return nil
}

// Cancel releases a booking and its slot.
func (f *BookingFlow) Cancel(ctx context.Context, bookingID string) error {
	booking, err := f.bookings.Cancel(ctx, bookingID)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.BookingsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.BookingUpserted{Booking: booking})
	f.store.Dispatch(store.UpdateRealTimeSlot{SlotID: booking.SlotID, Status: slotStatusFor(booking)})
	return nil
}

// Extend pushes a booking's end time out.
func (f *BookingFlow) Extend(ctx context.Context, bookingID string, extra time.Duration) error {
	booking, err := f.bookings.Extend(ctx, bookingID, extra)
	if guardErr := ctx.Err(); guardErr != nil {
		return guardErr
	}
	if err != nil {
		f.store.Dispatch(store.BookingsFailed{Reason: err.Error()})
		return err
	}
	f.store.Dispatch(store.BookingUpserted{Booking: booking})
	return nil
}

// slotStatusFor maps a booking's state onto the slot it holds.
func slotStatusFor(b domain.Booking) domain.SlotStatus {
	switch b.Status {
	case domain.BookingActive:
		return domain.SlotOccupied
	case domain.BookingConfirmed, domain.BookingPending:
		return domain.SlotReserved
	default:
		return domain.SlotAvailable
	}
}
