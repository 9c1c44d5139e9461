package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopdesk/backend/internal/domain/shared"
	eventinfra "github.com/shopdesk/backend/internal/infrastructure/event"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

const (
	feedWriteWait      = 10 * time.Second
	feedMaxMessageSize = 512
	feedSendBuffer     = 64
)

// FeedMessage is one frame pushed to dashboard subscribers
type FeedMessage struct {
	Type  string               `json:"type"`
	Event *eventinfra.Envelope `json:"event,omitempty"`
}

type feedClient struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func (fc *feedClient) close() {
	fc.once.Do(func() { close(fc.done) })
}

// DashboardFeedHandler upgrades staff connections to WebSockets and
// broadcasts order, payment and catalog events to them
type DashboardFeedHandler struct {
	BaseHandler
	serializer     *eventinfra.EventSerializer
	logger         *zap.Logger
	upgrader       websocket.Upgrader
	clients        sync.Map // map[string]*feedClient
	count          atomic.Int64
	heartbeat      time.Duration
	maxClients     int
	allowedOrigins []string
	ctx            context.Context
	cancel         context.CancelFunc
	startMu        sync.Mutex
	started        bool
}

// DashboardFeedOption configures a DashboardFeedHandler
type DashboardFeedOption func(*DashboardFeedHandler)

// WithFeedLogger sets the logger
func WithFeedLogger(logger *zap.Logger) DashboardFeedOption {
	return func(h *DashboardFeedHandler) {
		h.logger = logger
	}
}

// WithFeedHeartbeat sets the ping interval
func WithFeedHeartbeat(interval time.Duration) DashboardFeedOption {
	return func(h *DashboardFeedHandler) {
		h.heartbeat = interval
	}
}

// WithFeedMaxClients caps concurrent subscribers
func WithFeedMaxClients(max int) DashboardFeedOption {
	return func(h *DashboardFeedHandler) {
		h.maxClients = max
	}
}

// WithFeedAllowedOrigins sets the browser origins allowed to connect. "*"
// allows any origin; an empty list allows same-origin requests only.
func WithFeedAllowedOrigins(origins []string) DashboardFeedOption {
	return func(h *DashboardFeedHandler) {
		h.allowedOrigins = origins
	}
}

// NewDashboardFeedHandler creates a new DashboardFeedHandler
func NewDashboardFeedHandler(serializer *eventinfra.EventSerializer, opts ...DashboardFeedOption) *DashboardFeedHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &DashboardFeedHandler{
		serializer: serializer,
		logger:     zap.NewNop(),
		heartbeat:  30 * time.Second,
		maxClients: 1000,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// EventTypes implements shared.EventHandler
func (h *DashboardFeedHandler) EventTypes() []string {
	return eventinfra.FeedEventTypes
}

// Handle implements shared.EventHandler by broadcasting event to every
// connected client. Slow clients drop frames instead of blocking the bus.
func (h *DashboardFeedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	env, err := h.serializer.Wrap(event)
	if err != nil {
		return err
	}
	data, err := json.Marshal(FeedMessage{Type: "event", Event: &env})
	if err != nil {
		return err
	}
	h.broadcast(data)
	return nil
}

// Start begins the heartbeat loop
func (h *DashboardFeedHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return errors.New("dashboard feed already started")
	}
	go h.sendHeartbeats()
	h.started = true
	h.logger.Info("Dashboard feed started", zap.Int("max_clients", h.maxClients))
	return nil
}

// Stop disconnects every client
func (h *DashboardFeedHandler) Stop() {
	h.cancel()
	h.clients.Range(func(_, value any) bool {
		if client, ok := value.(*feedClient); ok {
			client.close()
		}
		return true
	})
	h.logger.Info("Dashboard feed stopped")
}

// ClientCount returns the number of connected clients
func (h *DashboardFeedHandler) ClientCount() int {
	return int(h.count.Load())
}

// Connect godoc
// @ID           dashboardFeed
// @Summary      Live dashboard feed
// @Description  Upgrades to a WebSocket streaming checkout, order status, payment and catalog events as JSON. Browsers pass the token as access_token.
// @Tags         admin-dashboard
// @Param        access_token query string false "Access token when the Authorization header cannot be set"
// @Success      101
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/ws/dashboard [get]
func (h *DashboardFeedHandler) Connect(c *gin.Context) {
	if h.ctx.Err() != nil {
		h.Error(c, http.StatusServiceUnavailable, "FEED_UNAVAILABLE", "Dashboard feed is shutting down")
		return
	}
	if int(h.count.Load()) >= h.maxClients {
		h.Error(c, http.StatusServiceUnavailable, "TOO_MANY_CONNECTIONS", "Dashboard feed is at capacity")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		h.logger.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		id:     uuid.NewString(),
		userID: middleware.GetJWTUserID(c),
		conn:   conn,
		send:   make(chan []byte, feedSendBuffer),
		done:   make(chan struct{}),
	}
	h.clients.Store(client.id, client)
	h.count.Add(1)
	h.logger.Info("Dashboard client connected",
		zap.String("client_id", client.id),
		zap.String("user_id", client.userID),
		zap.Int("clients", h.ClientCount()))

	if hello, err := json.Marshal(FeedMessage{Type: "connected"}); err == nil {
		client.send <- hello
	}

	go h.readPump(client)
	h.writePump(client)
}

func (h *DashboardFeedHandler) broadcast(data []byte) {
	h.clients.Range(func(_, value any) bool {
		client, ok := value.(*feedClient)
		if !ok {
			return true
		}
		select {
		case client.send <- data:
		case <-client.done:
		default:
			h.logger.Warn("Dashboard client too slow, dropping frame", zap.String("client_id", client.id))
		}
		return true
	})
}

func (h *DashboardFeedHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.clients.Range(func(_, value any) bool {
				client, ok := value.(*feedClient)
				if !ok {
					return true
				}
				deadline := time.Now().Add(feedWriteWait)
				if err := client.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					client.close()
				}
				return true
			})
		}
	}
}

// readPump consumes client frames so control messages are processed and a
// closed connection is noticed
func (h *DashboardFeedHandler) readPump(client *feedClient) {
	defer client.close()

	client.conn.SetReadLimit(feedMaxMessageSize)
	pongWait := 2 * h.heartbeat
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *DashboardFeedHandler) writePump(client *feedClient) {
	defer h.disconnect(client)

	for {
		select {
		case data := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-client.done:
			_ = client.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(feedWriteWait))
			return
		}
	}
}

func (h *DashboardFeedHandler) disconnect(client *feedClient) {
	client.close()
	if _, loaded := h.clients.LoadAndDelete(client.id); loaded {
		h.count.Add(-1)
	}
	_ = client.conn.Close()
	h.logger.Info("Dashboard client disconnected",
		zap.String("client_id", client.id),
		zap.Int("clients", h.ClientCount()))
}

func (h *DashboardFeedHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(h.allowedOrigins, "*") || slices.Contains(h.allowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
