package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"smartpark/internal/domain"
)

var (
	// ErrLotNotFound is returned for unknown lot ids.
	ErrLotNotFound = errors.New("parking: lot not found")
	// ErrSlotNotFound is returned for unknown slot ids.
	ErrSlotNotFound = errors.New("parking: slot not found")
)

// ParkingAPI is the contract the rest of the client consumes. The mocked
// in-memory facade and the HTTP-backed client both satisfy it.
type ParkingAPI interface {
	Lots(ctx context.Context) ([]domain.ParkingLot, error)
	Lot(ctx context.Context, id string) (domain.ParkingLot, error)
	Slots(ctx context.Context, lotID string, filter domain.SlotFilter) ([]domain.ParkingSlot, error)
	SlotStatus(ctx context.Context, slotID string) (domain.SlotStatus, error)
	UpdateSlotStatus(ctx context.Context, slotID string, status domain.SlotStatus) (domain.ParkingSlot, error)
	Occupancy(ctx context.Context, lotID string) (map[string]domain.SlotStatus, error)
}

// ParkingService serves lots and slots from static in-memory tables with
// simulated latency.
type ParkingService struct {
	mu      sync.Mutex
	lots    []domain.ParkingLot
	slots   map[string]domain.ParkingSlot
	order   []string
	latency time.Duration
	logger  *zap.Logger
}

var _ ParkingAPI = (*ParkingService)(nil)

// NewParkingService seeds two lots with generated slot grids.
func NewParkingService(latency time.Duration, logger *zap.Logger) *ParkingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ParkingService{
		slots:   make(map[string]domain.ParkingSlot),
		latency: latency,
		logger:  logger,
	}
	s.seed()
	return s
}

func (s *ParkingService) seed() {
	s.lots = []domain.ParkingLot{
		{
			ID: "lot-central", Name: "Central Plaza Parking",
			Address: "12 MG Road", HourlyRate: 40, IsActive: true,
		},
		{
			ID: "lot-riverside", Name: "Riverside Mall Parking",
			Address: "3 River View Lane", HourlyRate: 30, IsActive: true,
		},
	}
	s.seedSection("lot-central", "A", 0, 24)
	s.seedSection("lot-central", "B", 1, 24)
	s.seedSection("lot-riverside", "C", 0, 32)
	for i := range s.lots {
		total, available, occupied := 0, 0, 0
		for _, id := range s.order {
			slot := s.slots[id]
			if slot.LotID != s.lots[i].ID {
				continue
			}
			total++
			switch slot.Status {
			case domain.SlotAvailable:
				available++
			case domain.SlotOccupied:
				occupied++
			}
		}
		s.lots[i].TotalSlots = total
		s.lots[i].AvailableSlots = available
		s.lots[i].OccupiedSlots = occupied
	}
}

func (s *ParkingService) seedSection(lotID, section string, floor, count int) {
	for n := 1; n <= count; n++ {
		// Deterministic occupancy pattern so fixtures are stable.
		status := domain.SlotAvailable
		switch {
		case n%7 == 0:
			status = domain.SlotReserved
		case n%3 == 0:
			status = domain.SlotOccupied
		}
		vehicleType := domain.VehicleCar
		if n%10 == 0 {
			vehicleType = domain.VehicleMotorcycle
		}
		slot := domain.ParkingSlot{
			ID:           fmt.Sprintf("%s-%d", section, n),
			LotID:        lotID,
			SlotNumber:   fmt.Sprintf("%s%02d", section, n),
			Position:     domain.SlotPosition{Zone: section, Row: section, Column: n},
			Status:       status,
			VehicleType:  vehicleType,
			FloorLevel:   floor,
			Section:      section,
			IsAccessible: n <= 2,
		}
		s.slots[slot.ID] = slot
		s.order = append(s.order, slot.ID)
	}
}

// Lots lists all parking lots.
func (s *ParkingService) Lots(ctx context.Context) ([]domain.ParkingLot, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ParkingLot(nil), s.lots...), nil
}

// Lot returns a single lot by id.
func (s *ParkingService) Lot(ctx context.Context, id string) (domain.ParkingLot, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return domain.ParkingLot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lot := range s.lots {
		if lot.ID == id {
			return lot, nil
		}
	}
	return domain.ParkingLot{}, ErrLotNotFound
}

// Slots lists slots, optionally restricted to one lot and filtered.
func (s *ParkingService) Slots(ctx context.Context, lotID string, filter domain.SlotFilter) ([]domain.ParkingSlot, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ParkingSlot, 0, len(s.order))
	for _, id := range s.order {
		slot := s.slots[id]
		if lotID != "" && slot.LotID != lotID {
			continue
		}
		if !filter.Matches(slot) {
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}

// SlotStatus returns the current status of one slot.
func (s *ParkingService) SlotStatus(ctx context.Context, slotID string) (domain.SlotStatus, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return "", ErrSlotNotFound
	}
	return slot.Status, nil
}

// UpdateSlotStatus mutates a slot's status and returns the updated slot.
func (s *ParkingService) UpdateSlotStatus(ctx context.Context, slotID string, status domain.SlotStatus) (domain.ParkingSlot, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return domain.ParkingSlot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return domain.ParkingSlot{}, ErrSlotNotFound
	}
	slot.Status = status
	s.slots[slotID] = slot
	s.logger.Info("slot status updated", zap.String("slot_id", slotID), zap.String("status", string(status)))
	return slot, nil
}

// Occupancy returns the status map for every slot in a lot.
func (s *ParkingService) Occupancy(ctx context.Context, lotID string) (map[string]domain.SlotStatus, error) {
	if err := simulateLatency(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.SlotStatus)
	found := false
	for _, lot := range s.lots {
		if lot.ID == lotID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrLotNotFound
	}
	for _, id := range s.order {
		slot := s.slots[id]
		if slot.LotID == lotID {
			out[slot.ID] = slot.Status
		}
	}
	return out, nil
}
