package store

import "smartpark/internal/domain"

// NotificationState accumulates notifications. Entries are only ever
// appended or flipped to read; pagination in the UI hides old ones.
type NotificationState struct {
	Notifications []domain.Notification
	UnreadCount   int
}

func reduceNotifications(s NotificationState, ev Event) NotificationState {
	switch e := ev.(type) {
	case NotificationAdded:
		s.Notifications = append(append([]domain.Notification(nil), s.Notifications...), e.Notification)
		if !e.Notification.IsRead {
			s.UnreadCount++
		}
	case NotificationRead:
		out := append([]domain.Notification(nil), s.Notifications...)
		for i := range out {
			if out[i].ID == e.ID && !out[i].IsRead {
				out[i].IsRead = true
				s.UnreadCount--
			}
		}
		s.Notifications = out
	case AllNotificationsRead:
		out := append([]domain.Notification(nil), s.Notifications...)
		for i := range out {
			out[i].IsRead = true
		}
		s.Notifications = out
		s.UnreadCount = 0
	}
	return s
}
