package wsgateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/teamtrack/internal/domain/realtime"
	"github.com/riskibarqy/teamtrack/internal/platform/logging"
)

// Subscriber is the change feed the hub listens to.
type Subscriber interface {
	Subscribe(channel realtime.Channel, handler realtime.Handler) (func(), error)
}

type Config struct {
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	AllowedOrigins  []string
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		PongTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      64,
	}
}

func normalizeConfig(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.PongTimeout <= 0 {
		cfg.PongTimeout = defaults.PongTimeout
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongTimeout {
		cfg.PingInterval = cfg.PongTimeout * 9 / 10
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaults.MaxMessageSize
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = defaults.ReadBufferSize
	}
	if cfg.WriteBufferSize <= 0 {
		cfg.WriteBufferSize = defaults.WriteBufferSize
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaults.SendBuffer
	}
	return cfg
}

// Hub keeps one connection set per channel and fans feed changes out to it.
type Hub struct {
	subscriber Subscriber
	upgrader   websocket.Upgrader
	cfg        Config
	logger     *logging.Logger

	mu      sync.RWMutex
	clients map[realtime.Channel]map[*client]struct{}
	stops   []func()
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	userID    string
	channel   realtime.Channel
	send      chan []byte
	closeOnce sync.Once
}

func NewHub(subscriber Subscriber, cfg Config, logger *logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = normalizeConfig(cfg)

	h := &Hub{
		subscriber: subscriber,
		cfg:        cfg,
		logger:     logger,
		clients:    make(map[realtime.Channel]map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

// Start subscribes to every channel and blocks until ctx is done.
func (h *Hub) Start(ctx context.Context) error {
	for _, channel := range []realtime.Channel{realtime.ChannelChatMessages, realtime.ChannelAnnouncements} {
		stop, err := h.subscriber.Subscribe(channel, h.broadcast)
		if err != nil {
			h.stopSubscriptions()
			return crerr.Wrapf(err, "subscribe hub to %s", channel)
		}
		h.mu.Lock()
		h.stops = append(h.stops, stop)
		h.mu.Unlock()
	}
	h.logger.Info("realtime hub started")

	<-ctx.Done()
	h.stopSubscriptions()
	h.closeAll()
	h.logger.Info("realtime hub stopped")
	return nil
}

func (h *Hub) stopSubscriptions() {
	h.mu.Lock()
	stops := h.stops
	h.stops = nil
	h.mu.Unlock()
	for _, stop := range stops {
		stop()
	}
}

// Serve upgrades the request and attaches the connection to channel.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string, channel realtime.Channel) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return crerr.Wrap(err, "upgrade websocket")
	}

	c := &client{
		hub:     h,
		conn:    conn,
		userID:  userID,
		channel: channel,
		send:    make(chan []byte, h.cfg.SendBuffer),
	}
	h.register(c)

	go c.writePump()
	go c.readPump()

	h.logger.InfoContext(r.Context(), "realtime connection opened", "user_id", userID, "channel", channel)
	return nil
}

func (h *Hub) subscriptionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.stops)
}

// ConnectionCount reports open connections on channel.
func (h *Hub) ConnectionCount(channel realtime.Channel) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.channel] == nil {
		h.clients[c.channel] = make(map[*client]struct{})
	}
	h.clients[c.channel][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	set := h.clients[c.channel]
	_, member := set[c]
	if member {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.channel)
		}
		c.closeSend()
	}
	h.mu.Unlock()

	if member {
		h.logger.Debug("realtime connection closed", "user_id", c.userID, "channel", c.channel)
	}
}

func (h *Hub) broadcast(ctx context.Context, change realtime.Change) {
	frame, err := sonic.Marshal(change)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode realtime frame failed", "channel", change.Channel, "error", err)
		return
	}

	// Sends happen under the read lock so unregister cannot close a send
	// channel mid-broadcast.
	var slow []*client
	h.mu.RLock()
	for c := range h.clients[change.Channel] {
		select {
		case c.send <- frame:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.WarnContext(ctx, "realtime client too slow, dropping", "user_id", c.userID, "channel", c.channel)
		h.unregister(c)
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	all := make([]*client, 0)
	for _, set := range h.clients {
		for c := range set {
			all = append(all, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.unregister(c)
	}
}

func (c *client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		}
	}
}

// readPump only services control frames; the feed is server to client.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.cfg.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("unexpected realtime close", "user_id", c.userID, "error", err)
			}
			return
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	allowAll := len(allowed) == 0
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
			continue
		}
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if allowAll || origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
