package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartpark/internal/domain"
)

var (
	// ErrBookingNotFound is returned for unknown booking ids.
	ErrBookingNotFound = errors.New("booking: not found")
	// ErrSlotUnavailable rejects bookings against a slot that is not free.
	ErrSlotUnavailable = errors.New("booking: slot not available")
	// ErrBookingClosed rejects changes to completed or cancelled bookings.
	ErrBookingClosed = errors.New("booking: already closed")
)

// BookingService simulates the reservation backend over the mocked parking
// tables.
type BookingService struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
	parking  *ParkingService
	latency  time.Duration
	logger   *zap.Logger
}

// NewBookingService builds the facade against the given parking tables.
func NewBookingService(parking *ParkingService, latency time.Duration, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings: make(map[string]domain.Booking),
		parking:  parking,
		latency:  latency,
		logger:   logger,
	}
}

// CreateRequest carries booking input.
type CreateRequest struct {
	UserID    string
	LotID     string
	SlotID    string
	VehicleID string
	StartTime time.Time
	Duration  time.Duration
}

// Create reserves a slot, marking it reserved in the parking tables.
func (s *BookingService) Create(ctx context.Context, req CreateRequest) (domain.Booking, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return domain.Booking{}, err
	}

	status, err := s.parking.SlotStatus(ctx, req.SlotID)
	if err != nil {
		return domain.Booking{}, err
	}
	if status != domain.SlotAvailable {
		return domain.Booking{}, ErrSlotUnavailable
	}

	lot, err := s.parking.Lot(ctx, req.LotID)
	if err != nil {
		return domain.Booking{}, err
	}
	if req.Duration <= 0 {
		req.Duration = time.Hour
	}
	if req.StartTime.IsZero() {
		req.StartTime = time.Now().UTC()
	}

	booking := domain.Booking{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		LotID:     req.LotID,
		SlotID:    req.SlotID,
		VehicleID: req.VehicleID,
		Status:    domain.BookingConfirmed,
		StartTime: req.StartTime,
		EndTime:   req.StartTime.Add(req.Duration),
		Amount:    lot.HourlyRate * req.Duration.Hours(),
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.parking.UpdateSlotStatus(ctx, req.SlotID, domain.SlotReserved); err != nil {
		return domain.Booking{}, err
	}

	s.mu.Lock()
	s.bookings[booking.ID] = booking
	s.mu.Unlock()

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", booking.SlotID))
	return booking, nil
}

// Cancel releases the slot and closes the booking.
func (s *BookingService) Cancel(ctx context.Context, bookingID string) (domain.Booking, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return domain.Booking{}, err
	}

	s.mu.Lock()
	booking, ok := s.bookings[bookingID]
	if !ok {
		s.mu.Unlock()
		return domain.Booking{}, ErrBookingNotFound
	}
	if booking.Status == domain.BookingCompleted || booking.Status == domain.BookingCancelled {
		s.mu.Unlock()
		return domain.Booking{}, ErrBookingClosed
	}
	booking.Status = domain.BookingCancelled
	s.bookings[bookingID] = booking
	s.mu.Unlock()

	if _, err := s.parking.UpdateSlotStatus(ctx, booking.SlotID, domain.SlotAvailable); err != nil {
		return domain.Booking{}, err
	}
	return booking, nil
}

// Extend pushes the booking's end time out and recomputes the amount.
func (s *BookingService) Extend(ctx context.Context, bookingID string, extra time.Duration) (domain.Booking, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return domain.Booking{}, err
	}
	if extra <= 0 {
		return domain.Booking{}, errors.New("booking: extension must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[bookingID]
	if !ok {
		return domain.Booking{}, ErrBookingNotFound
	}
	if booking.Status == domain.BookingCompleted || booking.Status == domain.BookingCancelled {
		return domain.Booking{}, ErrBookingClosed
	}

	lot, err := s.parking.Lot(ctx, booking.LotID)
	if err != nil {
		return domain.Booking{}, err
	}
	booking.EndTime = booking.EndTime.Add(extra)
	booking.Amount = lot.HourlyRate * booking.EndTime.Sub(booking.StartTime).Hours()
	s.bookings[bookingID] = booking
	return booking, nil
}

// ListForUser returns the user's bookings, newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
