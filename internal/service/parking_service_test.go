package service

import (
	"context"
	"errors"
	"testing"

	"smartpark/internal/domain"
)

func TestSeededLotsAreConsistent(t *testing.T) {
	s := NewParkingService(0, nil)
	lots, err := s.Lots(context.Background())
	if err != nil {
		t.Fatalf("lots: %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("expected 2 lots, got %d", len(lots))
	}
	for _, lot := range lots {
		slots, err := s.Slots(context.Background(), lot.ID, domain.SlotFilter{})
		if err != nil {
			t.Fatalf("slots(%s): %v", lot.ID, err)
		}
		if len(slots) != lot.TotalSlots {
			t.Fatalf("lot %s totalSlots = %d, have %d slots", lot.ID, lot.TotalSlots, len(slots))
		}
		available, occupied := 0, 0
		for _, slot := range slots {
			switch slot.Status {
			case domain.SlotAvailable:
				available++
			case domain.SlotOccupied:
				occupied++
			}
		}
		if available != lot.AvailableSlots || occupied != lot.OccupiedSlots {
			t.Fatalf("lot %s counters available=%d occupied=%d, derived available=%d occupied=%d",
				lot.ID, lot.AvailableSlots, lot.OccupiedSlots, available, occupied)
		}
	}
}

func TestLotNotFound(t *testing.T) {
	s := NewParkingService(0, nil)
	if _, err := s.Lot(context.Background(), "lot-missing"); !errors.Is(err, ErrLotNotFound) {
		t.Fatalf("err = %v, want ErrLotNotFound", err)
	}
}

func TestSlotsFilter(t *testing.T) {
	s := NewParkingService(0, nil)
	accessible := true
	slots, err := s.Slots(context.Background(), "lot-central", domain.SlotFilter{
		Section:      "A",
		IsAccessible: &accessible,
	})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 accessible slots in section A, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.Section != "A" || !slot.IsAccessible {
			t.Fatalf("filter leak: %+v", slot)
		}
	}
}

func TestSlotsFilterByStatus(t *testing.T) {
	s := NewParkingService(0, nil)
	slots, err := s.Slots(context.Background(), "lot-riverside", domain.SlotFilter{Status: domain.SlotReserved})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	// Slots 7, 14, 21, 28 of section C follow the reserved pattern.
	if len(slots) != 4 {
		t.Fatalf("expected 4 reserved slots, got %d", len(slots))
	}
}

func TestUpdateSlotStatusRoundTrip(t *testing.T) {
	s := NewParkingService(0, nil)
	ctx := context.Background()

	updated, err := s.UpdateSlotStatus(ctx, "A-1", domain.SlotOutOfOrder)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.SlotOutOfOrder {
		t.Fatalf("returned status = %q", updated.Status)
	}
	status, err := s.SlotStatus(ctx, "A-1")
	if err != nil {
		t.Fatalf("slotStatus: %v", err)
	}
	if status != domain.SlotOutOfOrder {
		t.Fatalf("persisted status = %q", status)
	}
}

func TestUpdateUnknownSlot(t *testing.T) {
	s := NewParkingService(0, nil)
	if _, err := s.UpdateSlotStatus(context.Background(), "Z-1", domain.SlotCleaning); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("err = %v, want ErrSlotNotFound", err)
	}
}

func TestOccupancyCoversWholeLot(t *testing.T) {
	s := NewParkingService(0, nil)
	occ, err := s.Occupancy(context.Background(), "lot-riverside")
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if len(occ) != 32 {
		t.Fatalf("expected 32 entries, got %d", len(occ))
	}
	if _, ok := occ["C-1"]; !ok {
		t.Fatalf("C-1 missing from occupancy map")
	}
	if _, ok := occ["A-1"]; ok {
		t.Fatalf("occupancy leaked a slot from another lot")
	}
}

func TestOccupancyUnknownLot(t *testing.T) {
	s := NewParkingService(0, nil)
	if _, err := s.Occupancy(context.Background(), "lot-missing"); !errors.Is(err, ErrLotNotFound) {
		t.Fatalf("err = %v, want ErrLotNotFound", err)
	}
}
