package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartpark/internal/domain"
	"smartpark/internal/store"
)

// Inbound event names on the wire.
const (
	evtMessage          = "message"
	evtSlotStatusUpdate = "slot-status-update"
	evtUserNotification = "user-notification"
	evtViolationAlert   = "violation-alert"
	evtBookingUpdate    = "booking-update"
	evtPaymentStatus    = "payment-status"
	evtCameraStatus     = "camera-status"
	evtStatsUpdate      = "stats-update"
	evtConfigUpdate     = "config-update"
)

// handleFrame deserializes one inbound frame and dispatches it. The
// high-frequency types (slot deltas, user notifications, violation alerts)
// bypass the generic message pipeline and go straight to their owning
// slice; everything else is wrapped into a Message envelope, recorded as
// lastMessage, and handed to the type interpreter.
func (c *Client) handleFrame(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.logger.Warn("undecodable frame", zap.Error(err))
		return
	}

	switch f.Event {
	case evtSlotStatusUpdate:
		var delta struct {
			SlotID string            `json:"slotId"`
			Status domain.SlotStatus `json:"status"`
		}
		if err := json.Unmarshal(f.Data, &delta); err != nil {
			c.logger.Warn("bad slot delta", zap.Error(err))
			return
		}
		c.store.Dispatch(store.UpdateRealTimeSlot{SlotID: delta.SlotID, Status: delta.Status})

	case evtUserNotification:
		var n domain.Notification
		if err := json.Unmarshal(f.Data, &n); err != nil {
			c.logger.Warn("bad notification", zap.Error(err))
			return
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now().UTC()
		}
		c.store.Dispatch(store.NotificationAdded{Notification: n})

	case evtViolationAlert:
		var alert struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(f.Data, &alert); err != nil {
			c.logger.Warn("bad violation alert", zap.Error(err))
			return
		}
		c.store.Dispatch(store.NotificationAdded{Notification: domain.Notification{
			ID:        "alert-" + uuid.NewString(),
			Type:      domain.NotifyViolationWarning,
			Title:     "Violation Alert",
			Message:   alert.Message,
			Priority:  domain.PriorityHigh,
			CreatedAt: time.Now().UTC(),
		}})

	case evtBookingUpdate:
		c.receiveMessage(domain.MsgBookingConfirmed, "bookings", f.Data)

	case evtPaymentStatus:
		var payment struct {
			Status string `json:"status"`
		}
		msgType := domain.MsgPaymentFailed
		if err := json.Unmarshal(f.Data, &payment); err == nil && payment.Status == "completed" {
			msgType = domain.MsgPaymentCompleted
		}
		c.receiveMessage(msgType, "payments", f.Data)

	case evtCameraStatus:
		c.receiveMessage(domain.MsgCameraStatusChange, "cameras", f.Data)

	case evtStatsUpdate:
		c.receiveMessage(domain.MsgStatsUpdate, "system", f.Data)

	case evtConfigUpdate:
		var config domain.SystemConfig
		if err := json.Unmarshal(f.Data, &config); err != nil {
			c.logger.Warn("bad config update", zap.Error(err))
			return
		}
		c.store.Dispatch(store.SystemConfigUpdated{Config: config})

	case evtMessage:
		var m domain.Message
		if err := json.Unmarshal(f.Data, &m); err != nil {
			c.logger.Warn("bad message envelope", zap.Error(err))
			return
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		c.store.Dispatch(store.MessageReceived{Message: m})
		c.interpret(m)

	default:
		c.logger.Debug("unhandled event", zap.String("event", f.Event))
	}
}

func (c *Client) receiveMessage(t domain.MessageType, channel string, data json.RawMessage) {
	m := domain.Message{
		ID:        fmt.Sprintf("%s-%s", channel, uuid.NewString()),
		Type:      t,
		Channel:   channel,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	c.store.Dispatch(store.MessageReceived{Message: m})
	c.interpret(m)
}

// interpret is the dispatch-on-type side effect behind the generic message
// pipeline. Alert-class types raise notifications, typed payloads feed
// their slices, anything else is a no-op.
func (c *Client) interpret(m domain.Message) {
	switch m.Type {
	case domain.MsgSystemAlert:
		c.store.Dispatch(store.NotificationAdded{Notification: domain.Notification{
			ID:        m.ID,
			Type:      domain.NotifySystemUpdate,
			Title:     "System Alert",
			Message:   dataMessage(m.Data),
			Priority:  domain.PriorityHigh,
			CreatedAt: m.Timestamp,
		}})

	case domain.MsgMaintenanceNotice:
		c.store.Dispatch(store.NotificationAdded{Notification: domain.Notification{
			ID:        m.ID,
			Type:      domain.NotifyMaintenanceNotice,
			Title:     "Maintenance Notice",
			Message:   dataMessage(m.Data),
			Priority:  domain.PriorityMedium,
			CreatedAt: m.Timestamp,
		}})
		var window domain.MaintenanceWindow
		if err := json.Unmarshal(m.Data, &window); err == nil {
			c.store.Dispatch(store.MaintenanceAnnounced{Window: window})
		}

	case domain.MsgBookingConfirmed, domain.MsgBookingStarted, domain.MsgBookingCompleted, domain.MsgBookingCancelled:
		var b domain.Booking
		if err := json.Unmarshal(m.Data, &b); err != nil || b.ID == "" {
			return
		}
		c.store.Dispatch(store.BookingUpserted{Booking: b})

	case domain.MsgCameraStatusChange:
		var cam domain.Camera
		if err := json.Unmarshal(m.Data, &cam); err != nil || cam.ID == "" {
			return
		}
		c.store.Dispatch(store.CameraStatusChanged{Camera: cam})

	case domain.MsgStatsUpdate:
		var stats domain.SystemStats
		if err := json.Unmarshal(m.Data, &stats); err != nil {
			return
		}
		c.store.Dispatch(store.StatsUpdated{Stats: stats})

	default:
		c.logger.Debug("unhandled message type", zap.String("type", string(m.Type)))
	}
}

func dataMessage(data json.RawMessage) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return string(data)
}
