package store

import (
	"smartpark/internal/domain"
)

// Event is a member of the closed set of state transitions. Every mutation
// of the store goes through Dispatch with one of the types below; reducers
// switch on the concrete type.
type Event interface {
	event()
}

// Connection slice events.

type ConnectionStart struct{}

type ConnectionSuccess struct{}

type ConnectionFailed struct{ Reason string }

type ConnectionClosed struct{}

type RetriesExhausted struct{}

type MessageReceived struct{ Message domain.Message }

type SubscribeChannel struct{ Channel string }

type UnsubscribeChannel struct{ Channel string }

type ClearConnectionError struct{}

// Auth slice events.

type AuthRequested struct{}

type AuthSucceeded struct{ Session domain.AuthSession }

type AuthFailed struct{ Reason string }

type AuthCleared struct{}

type UserLoaded struct{ User domain.User }

type TokensRefreshed struct {
	Token        string
	RefreshToken string
}

type OTPSent struct{ Mobile string }

// Parking slice events.

type SelectLot struct{ LotID string }

type UpdateRealTimeSlot struct {
	SlotID string
	Status domain.SlotStatus
}

type BulkUpdateSlots struct{ Statuses map[string]domain.SlotStatus }

type LotsRequested struct{}

type LotsLoaded struct{ Lots []domain.ParkingLot }

type LotsFailed struct{ Reason string }

type SlotsRequested struct{}

type SlotsLoaded struct{ Slots []domain.ParkingSlot }

type SlotsFailed struct{ Reason string }

type SlotStatusLoaded struct {
	SlotID string
	Status domain.SlotStatus
}

type SlotUpdated struct{ Slot domain.ParkingSlot }

type SlotUpdateFailed struct{ Reason string }

type ResetParking struct{}

type ClearParkingError struct{}

// Booking slice events.

type BookingsRequested struct{}

type BookingsLoaded struct{ Bookings []domain.Booking }

type BookingsFailed struct{ Reason string }

type BookingUpserted struct{ Booking domain.Booking }

// Notification slice events.

type NotificationAdded struct{ Notification domain.Notification }

type NotificationRead struct{ ID string }

type AllNotificationsRead struct{}

// Camera slice events.

type CameraStatusChanged struct{ Camera domain.Camera }

// System slice events.

type StatsUpdated struct{ Stats domain.SystemStats }

type MaintenanceAnnounced struct{ Window domain.MaintenanceWindow }

type SystemConfigUpdated struct{ Config domain.SystemConfig }

func (ConnectionStart) event()      {}
func (ConnectionSuccess) event()    {}
func (ConnectionFailed) event()     {}
func (ConnectionClosed) event()     {}
func (RetriesExhausted) event()     {}
func (MessageReceived) event()      {}
func (SubscribeChannel) event()     {}
func (UnsubscribeChannel) event()   {}
func (ClearConnectionError) event() {}

func (AuthRequested) event()   {}
func (AuthSucceeded) event()   {}
func (AuthFailed) event()      {}
func (AuthCleared) event()     {}
func (UserLoaded) event()      {}
func (TokensRefreshed) event() {}
func (OTPSent) event()         {}

func (SelectLot) event()          {}
func (UpdateRealTimeSlot) event() {}
func (BulkUpdateSlots) event()    {}
func (LotsRequested) event()      {}
func (LotsLoaded) event()         {}
func (LotsFailed) event()         {}
func (SlotsRequested) event()     {}
func (SlotsLoaded) event()        {}
func (SlotsFailed) event()        {}
func (SlotStatusLoaded) event()   {}
func (SlotUpdated) event()        {}
func (SlotUpdateFailed) event()   {}
func (ResetParking) event()       {}
func (ClearParkingError) event()  {}

func (BookingsRequested) event() {}
func (BookingsLoaded) event()    {}
func (BookingsFailed) event()    {}
func (BookingUpserted) event()   {}

func (NotificationAdded) event()    {}
func (NotificationRead) event()     {}
func (AllNotificationsRead) event() {}

func (CameraStatusChanged) event() {}

func (StatsUpdated) event()         {}
func (MaintenanceAnnounced) event() {}
func (SystemConfigUpdated) event()  {}
