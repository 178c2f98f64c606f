package store

import (
	"time"

	"smartpark/internal/domain"
)

// ParkingState caches lots, the slot list of the selected lot, and the
// real-time status map. The map is authoritative for "latest known status"
// independently of the cached slot list.
type ParkingState struct {
	Lots          []domain.ParkingLot
	SelectedLotID string
	Slots         []domain.ParkingSlot
	RealTimeSlots map[string]domain.SlotStatus
	IsLoading     bool
	Error         string
	LastUpdated   time.Time
}

func reduceParking(s ParkingState, ev Event) ParkingState {
	switch e := ev.(type) {
	case SelectLot:
		s.SelectedLotID = e.LotID

	case UpdateRealTimeSlot:
		s.RealTimeSlots = cloneStatuses(s.RealTimeSlots)
		s.RealTimeSlots[e.SlotID] = e.Status
		s.Slots = patchSlotStatus(s.Slots, e.SlotID, e.Status)
		s.Lots = recountSelectedLot(s.Lots, s.Slots, s.SelectedLotID)
		s.LastUpdated = timeNow().UTC()

	case BulkUpdateSlots:
		s.RealTimeSlots = cloneStatuses(s.RealTimeSlots)
		for id, status := range e.Statuses {
			s.RealTimeSlots[id] = status
			s.Slots = patchSlotStatus(s.Slots, id, status)
		}
		s.Lots = recountSelectedLot(s.Lots, s.Slots, s.SelectedLotID)
		s.LastUpdated = timeNow().UTC()

	case LotsRequested, SlotsRequested:
		s.IsLoading = true
		s.Error = ""

	case LotsLoaded:
		s.IsLoading = false
		s.Error = ""
		s.Lots = e.Lots
		s.LastUpdated = timeNow().UTC()

	case LotsFailed:
		s.IsLoading = false
		s.Error = e.Reason

	case SlotsLoaded:
		s.IsLoading = false
		s.Error = ""
		s.Slots = e.Slots
		s.LastUpdated = timeNow().UTC()

	case SlotsFailed:
		s.IsLoading = false
		s.Error = e.Reason

	case SlotStatusLoaded:
		s.RealTimeSlots = cloneStatuses(s.RealTimeSlots)
		s.RealTimeSlots[e.SlotID] = e.Status
		s.LastUpdated = timeNow().UTC()

	case SlotUpdated:
		s.Slots = replaceSlot(s.Slots, e.Slot)
		s.RealTimeSlots = cloneStatuses(s.RealTimeSlots)
		s.RealTimeSlots[e.Slot.ID] = e.Slot.Status
		s.Lots = recountSelectedLot(s.Lots, s.Slots, s.SelectedLotID)
		s.LastUpdated = timeNow().UTC()

	case SlotUpdateFailed:
		s.Error = e.Reason

	case ResetParking, AuthCleared:
		s.SelectedLotID = ""
		s.Slots = nil
		s.RealTimeSlots = nil
		s.Error = ""

	case ClearParkingError:
		s.Error = ""
	}
	return s
}

func cloneStatuses(m map[string]domain.SlotStatus) map[string]domain.SlotStatus {
	out := make(map[string]domain.SlotStatus, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func patchSlotStatus(slots []domain.ParkingSlot, slotID string, status domain.SlotStatus) []domain.ParkingSlot {
	for i, slot := range slots {
		if slot.ID != slotID {
			continue
		}
		out := append([]domain.ParkingSlot(nil), slots...)
		out[i].Status = status
		return out
	}
	return slots
}

func replaceSlot(slots []domain.ParkingSlot, updated domain.ParkingSlot) []domain.ParkingSlot {
	for i, slot := range slots {
		if slot.ID != updated.ID {
			continue
		}
		out := append([]domain.ParkingSlot(nil), slots...)
		out[i] = updated
		return out
	}
	return slots
}

// recountSelectedLot recomputes the selected lot's availability counters by
// filtering the full slot list. A full recount on every delta keeps the
// counters correct without incremental bookkeeping.
func recountSelectedLot(lots []domain.ParkingLot, slots []domain.ParkingSlot, selectedLotID string) []domain.ParkingLot {
	if selectedLotID == "" {
		return lots
	}
	for i, lot := range lots {
		if lot.ID != selectedLotID {
			continue
		}
		available, occupied := 0, 0
		for _, slot := range slots {
			if slot.LotID != lot.ID {
				continue
			}
			switch slot.Status {
			case domain.SlotAvailable:
				available++
			case domain.SlotOccupied:
				occupied++
			}
		}
		out := append([]domain.ParkingLot(nil), lots...)
		out[i].AvailableSlots = available
		out[i].OccupiedSlots = occupied
		return out
	}
	return lots
}
