package domain

import "time"

// BookingStatus tracks a reservation through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking reserves one slot for one vehicle over a time window.
type Booking struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	LotID     string        `json:"parkingLotId"`
	SlotID    string        `json:"slotId"`
	VehicleID string        `json:"vehicleId,omitempty"`
	Status    BookingStatus `json:"status"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Amount    float64       `json:"amount"`
	CreatedAt time.Time     `json:"createdAt"`
}
