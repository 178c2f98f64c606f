package domain

import (
	"encoding/json"
	"time"
)

// MessageType tags a real-time message envelope.
type MessageType string

const (
	// Slot updates.
	MsgSlotStatusUpdate MessageType = "slot-status-update"
	MsgSlotAvailable    MessageType = "slot-available"
	MsgSlotOccupied     MessageType = "slot-occupied"
	MsgSlotReserved     MessageType = "slot-reserved"

	// Booking updates.
	MsgBookingConfirmed MessageType = "booking-confirmed"
	MsgBookingStarted   MessageType = "booking-started"
	MsgBookingCompleted MessageType = "booking-completed"
	MsgBookingCancelled MessageType = "booking-cancelled"

	// Payment updates.
	MsgPaymentProcessing MessageType = "payment-processing"
	MsgPaymentCompleted  MessageType = "payment-completed"
	MsgPaymentFailed     MessageType = "payment-failed"
	MsgPaymentRefunded   MessageType = "payment-refunded"

	// User-facing alerts.
	MsgUserNotification MessageType = "user-notification"
	MsgViolationAlert   MessageType = "violation-alert"
	MsgSystemAlert      MessageType = "system-alert"

	// Camera and detection.
	MsgCameraStatusChange MessageType = "camera-status-change"
	MsgDetectionUpdate    MessageType = "detection-update"

	// System-wide.
	MsgStatsUpdate       MessageType = "stats-update"
	MsgOccupancyChange   MessageType = "occupancy-change"
	MsgMaintenanceNotice MessageType = "maintenance-notice"
)

// Message is an immutable real-time envelope. Data stays opaque until a
// consumer that knows the type decodes it.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Channel   string          `json:"channel"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}
