package domain

// SlotStatus is the last known state of a parking slot.
type SlotStatus string

const (
	SlotAvailable  SlotStatus = "available"
	SlotOccupied   SlotStatus = "occupied"
	SlotReserved   SlotStatus = "reserved"
	SlotOutOfOrder SlotStatus = "out_of_order"
	SlotCleaning   SlotStatus = "cleaning"
)

// ParkingLot aggregates slots under one physical location. Available and
// occupied counts are derived from slot statuses, not stored authority.
type ParkingLot struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	TotalSlots     int     `json:"totalSlots"`
	AvailableSlots int     `json:"availableSlots"`
	OccupiedSlots  int     `json:"occupiedSlots"`
	HourlyRate     float64 `json:"hourlyRate"`
	IsActive       bool    `json:"isActive"`
}

// SlotPosition locates a slot within a lot.
type SlotPosition struct {
	Zone   string `json:"zone"`
	Row    string `json:"row"`
	Column int    `json:"column"`
}

// ParkingSlot is a single bookable space.
type ParkingSlot struct {
	ID           string       `json:"id"`
	LotID        string       `json:"parkingLotId"`
	SlotNumber   string       `json:"slotNumber"`
	Position     SlotPosition `json:"position"`
	Status       SlotStatus   `json:"status"`
	VehicleType  VehicleType  `json:"vehicleType"`
	FloorLevel   int          `json:"floorLevel"`
	Section      string       `json:"section"`
	IsAccessible bool         `json:"isAccessible"`
}

// SlotFilter narrows slot queries. Zero values mean "no constraint".
type SlotFilter struct {
	VehicleType  VehicleType
	Section      string
	FloorLevel   *int
	IsAccessible *bool
	Status       SlotStatus
}

// Matches reports whether the slot satisfies every set constraint.
func (f SlotFilter) Matches(s ParkingSlot) bool {
	if f.VehicleType != "" && s.VehicleType != f.VehicleType {
		return false
	}
	if f.Section != "" && s.Section != f.Section {
		return false
	}
	if f.FloorLevel != nil && s.FloorLevel != *f.FloorLevel {
		return false
	}
	if f.IsAccessible != nil && s.IsAccessible != *f.IsAccessible {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return true
}
