// Package realtime maintains the client's single connection to the
// platform's push endpoint and translates inbound frames into store events.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"smartpark/internal/domain"
	"smartpark/internal/store"
)

const defaultDialTimeout = 10 * time.Second

// Conn is the transport surface the client needs. *websocket.Conn
// satisfies it; tests substitute fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// DialFunc opens an authenticated connection to url. The default
// implementation dials with gorilla/websocket and sends an authenticate
// frame carrying the token.
type DialFunc func(ctx context.Context, url, token string) (Conn, error)

// frame is the JSON envelope used in both directions.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Config tunes the channel client.
type Config struct {
	URL         string
	DialTimeout time.Duration
	Reconnect   ReconnectConfig
}

// Client owns at most one live connection. All durable state lives in the
// store; the client keeps only the connection handle and retry bookkeeping.
type Client struct {
	cfg    Config
	store  *store.Store
	logger *zap.Logger
	policy *ReconnectPolicy
	dial   DialFunc

	mu            sync.Mutex
	conn          Conn
	closedLocally Conn
	// closed marks a teardown that happened while no conn handle existed
	// yet, so a dial still in flight knows to drop its result.
	closed bool

	writeMu sync.Mutex
}

// NewClient builds a disconnected client. Call Connect to go live.
func NewClient(cfg Config, st *store.Store, logger *zap.Logger) *Client {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		cfg:    cfg,
		store:  st,
		logger: logger,
		dial:   dialWebSocket,
	}
	c.policy = NewReconnectPolicy(cfg.Reconnect,
		func() {
			if err := c.Connect(); err != nil {
				c.logger.Warn("scheduled reconnect failed", zap.Error(err))
			}
		},
		func() {
			st.Dispatch(store.RetriesExhausted{})
			st.Dispatch(store.NotificationAdded{Notification: domain.Notification{
				ID:        uuid.NewString(),
				Type:      domain.NotifySystemUpdate,
				Title:     "Connection Lost",
				Message:   "Real-time updates are unavailable. Reconnect manually to resume.",
				Priority:  domain.PriorityUrgent,
				CreatedAt: time.Now().UTC(),
			}})
		},
		logger)
	return c
}

func dialWebSocket(ctx context.Context, url, token string) (Conn, error) {
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	if err := ws.WriteJSON(outFrame{Event: "authenticate", Data: map[string]string{"token": token}}); err != nil {
		ws.Close()
		return nil, err
	}
	return ws, nil
}

// Connect opens the connection if none is live. The session token is read
// from the store at call time, never cached. On success the attempt counter
// resets and every channel the store believes is subscribed is replayed so
// subscriptions survive a drop.
func (c *Client) Connect() error {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.closed = false
	c.mu.Unlock()

	c.store.Dispatch(store.ConnectionStart{})
	token := c.store.State().Auth.Token

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.DialTimeout)
	defer cancel()

	conn, err := c.dial(ctx, c.cfg.URL, token)
	if err != nil {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if closed {
			c.store.Dispatch(store.ConnectionClosed{})
			return err
		}
		c.store.Dispatch(store.ConnectionFailed{Reason: err.Error()})
		c.policy.Failure()
		return err
	}

	c.mu.Lock()
	if c.closed || c.conn != nil {
		closed := c.closed
		c.mu.Unlock()
		conn.Close()
		if closed {
			c.store.Dispatch(store.ConnectionClosed{})
		}
		return nil
	}
	c.conn = conn
	c.mu.Unlock()

	c.store.Dispatch(store.ConnectionSuccess{})
	c.policy.Reset()

	for _, channel := range c.store.State().Connection.SubscribedChannels {
		if err := c.write(outFrame{Event: "subscribe", Data: channel}); err != nil {
			c.logger.Warn("subscription replay failed", zap.String("channel", channel), zap.Error(err))
			break
		}
	}

	go c.readLoop(conn)
	c.logger.Info("realtime connected", zap.String("url", c.cfg.URL))
	return nil
}

// Disconnect closes the transport if open and cancels any pending retry.
// Idempotent; a close initiated here never triggers the reconnect policy.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.closed = true
	if conn != nil {
		c.closedLocally = conn
	}
	c.mu.Unlock()

	c.policy.Stop()
	if conn != nil {
		conn.Close()
	}
}

// IsConnected reports whether a transport connection is live.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Subscribe sends a subscribe frame and records the channel in the store.
// While disconnected the intent is dropped; callers must subscribe again
// after the next connect.
func (c *Client) Subscribe(channel string) {
	if !c.IsConnected() {
		c.logger.Debug("subscribe dropped, not connected", zap.String("channel", channel))
		return
	}
	if err := c.write(outFrame{Event: "subscribe", Data: channel}); err != nil {
		c.logger.Warn("subscribe failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	c.store.Dispatch(store.SubscribeChannel{Channel: channel})
}

// Unsubscribe removes the channel from the recorded set regardless of
// connection state, sending the frame only when connected.
func (c *Client) Unsubscribe(channel string) {
	if c.IsConnected() {
		if err := c.write(outFrame{Event: "unsubscribe", Data: channel}); err != nil {
			c.logger.Warn("unsubscribe failed", zap.String("channel", channel), zap.Error(err))
		}
	}
	c.store.Dispatch(store.UnsubscribeChannel{Channel: channel})
}

// Emit sends a named event fire-and-forget. Silently dropped while
// disconnected; there is no queuing and no delivery guarantee.
func (c *Client) Emit(event string, payload any) {
	if !c.IsConnected() {
		c.logger.Debug("emit dropped, not connected", zap.String("event", event))
		return
	}
	if err := c.write(outFrame{Event: event, Data: payload}); err != nil {
		c.logger.Warn("emit failed", zap.String("event", event), zap.Error(err))
	}
}

func (c *Client) write(f outFrame) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(f)
}

// detach clears the handle after a read error and reports whether the close
// was initiated locally.
func (c *Client) detach(conn Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn {
		c.conn = nil
	}
	if c.closedLocally == conn {
		c.closedLocally = nil
		return true
	}
	return false
}

func (c *Client) readLoop(conn Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			local := c.detach(conn)
			c.store.Dispatch(store.ConnectionClosed{})
			if local {
				c.logger.Info("realtime disconnected")
				return
			}
			c.logger.Warn("realtime connection dropped", zap.Error(err))
			c.policy.Failure()
			return
		}
		c.handleFrame(data)
	}
}
