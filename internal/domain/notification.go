package domain

import "time"

// NotificationType categorizes user-facing notifications.
type NotificationType string

const (
	NotifyBookingConfirmation NotificationType = "booking_confirmation"
	NotifyBookingReminder     NotificationType = "booking_reminder"
	NotifyPaymentSuccess      NotificationType = "payment_success"
	NotifyPaymentFailed       NotificationType = "payment_failed"
	NotifyViolationWarning    NotificationType = "violation_warning"
	NotifySlotAvailable       NotificationType = "slot_available"
	NotifyMaintenanceNotice   NotificationType = "maintenance_notice"
	NotifySystemUpdate        NotificationType = "system_update"
)

// NotificationPriority orders notifications for display.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is created by an inbound push or a local dispatch. Only the
// IsRead flag mutates after creation; entries are never auto-deleted.
type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId,omitempty"`
	Type      NotificationType     `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Priority  NotificationPriority `json:"priority"`
	IsRead    bool                 `json:"isRead"`
	CreatedAt time.Time            `json:"createdAt"`
	ExpiresAt *time.Time           `json:"expiresAt,omitempty"`
	ActionURL string               `json:"actionUrl,omitempty"`
}
