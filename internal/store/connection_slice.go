package store

import (
	"time"

	"smartpark/internal/domain"
)

// timeNow is swapped out by tests that assert on timestamps.
var timeNow = time.Now

// ConnectionState mirrors the live transport from the store's point of view.
// IsConnected and IsConnecting are never both true.
type ConnectionState struct {
	IsConnected        bool
	IsConnecting       bool
	Error              string
	LastMessage        *domain.Message
	SubscribedChannels []string
	ConnectionAttempts int
	LastReconnectAt    *time.Time
	RetriesExhausted   bool
}

func reduceConnection(s ConnectionState, ev Event) ConnectionState {
	switch e := ev.(type) {
	case ConnectionStart:
		s.IsConnecting = true
		s.IsConnected = false
		s.Error = ""
		s.ConnectionAttempts++
	case ConnectionSuccess:
		s.IsConnected = true
		s.IsConnecting = false
		s.Error = ""
		s.ConnectionAttempts = 0
		s.RetriesExhausted = false
	case ConnectionFailed:
		s.IsConnected = false
		s.IsConnecting = false
		s.Error = e.Reason
		now := timeNow().UTC()
		s.LastReconnectAt = &now
	case ConnectionClosed:
		s.IsConnected = false
		s.IsConnecting = false
		// The server forgets subscriptions on disconnect, so local
		// bookkeeping does too.
		s.SubscribedChannels = nil
	case RetriesExhausted:
		s.RetriesExhausted = true
	case MessageReceived:
		m := e.Message
		s.LastMessage = &m
	case SubscribeChannel:
		for _, c := range s.SubscribedChannels {
			if c == e.Channel {
				return s
			}
		}
		s.SubscribedChannels = append(append([]string(nil), s.SubscribedChannels...), e.Channel)
	case UnsubscribeChannel:
		kept := make([]string, 0, len(s.SubscribedChannels))
		for _, c := range s.SubscribedChannels {
			if c != e.Channel {
				kept = append(kept, c)
			}
		}
		s.SubscribedChannels = kept
	case ClearConnectionError:
		s.Error = ""
	}
	return s
}
