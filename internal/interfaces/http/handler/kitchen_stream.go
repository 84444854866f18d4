package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restopos/backend/internal/domain/kitchen"
	"github.com/restopos/backend/internal/domain/shared"
	"github.com/restopos/backend/internal/interfaces/http/dto"
	"github.com/restopos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// SSEClient is a connected kitchen display
type SSEClient struct {
	ID     string
	UserID string
	Chan   chan SSEMessage
}

// SSEMessage is one server-sent event
type SSEMessage struct {
	Event string
	Data  string
	ID    string
}

// KitchenStreamHandler fans kitchen events out to connected displays over
// server-sent events. It is registered on the event bus as a handler.
type KitchenStreamHandler struct {
	BaseHandler
	logger     *zap.Logger
	heartbeat  time.Duration
	bufferSize int
	maxClients int

	mu      sync.RWMutex
	clients map[string]*SSEClient

	ctx     context.Context
	cancel  context.CancelFunc
	startMu sync.Mutex
	started bool
}

// KitchenStreamOption configures a KitchenStreamHandler
type KitchenStreamOption func(*KitchenStreamHandler)

// WithStreamLogger sets the logger
func WithStreamLogger(logger *zap.Logger) KitchenStreamOption {
	return func(h *KitchenStreamHandler) {
		h.logger = logger
	}
}

// WithStreamHeartbeat sets the heartbeat interval
func WithStreamHeartbeat(interval time.Duration) KitchenStreamOption {
	return func(h *KitchenStreamHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// WithStreamBuffer sets the per-client queue size. Events for a client whose
// queue is full are dropped.
func WithStreamBuffer(size int) KitchenStreamOption {
	return func(h *KitchenStreamHandler) {
		if size > 0 {
			h.bufferSize = size
		}
	}
}

// WithStreamMaxClients caps concurrent connections
func WithStreamMaxClients(max int) KitchenStreamOption {
	return func(h *KitchenStreamHandler) {
		h.maxClients = max
	}
}

// NewKitchenStreamHandler creates a kitchen stream hub
func NewKitchenStreamHandler(opts ...KitchenStreamOption) *KitchenStreamHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &KitchenStreamHandler{
		logger:     zap.NewNop(),
		heartbeat:  25 * time.Second,
		bufferSize: 32,
		maxClients: 200,
		clients:    make(map[string]*SSEClient),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start begins sending heartbeats
func (h *KitchenStreamHandler) Start() error {
	h.startMu.Lock()
	defer h.startMu.Unlock()

	if h.started {
		return fmt.Errorf("kitchen stream already started")
	}
	go h.sendHeartbeats()
	h.started = true
	h.logger.Info("Kitchen stream started", zap.Duration("heartbeat", h.heartbeat))
	return nil
}

// Stop disconnects every client
func (h *KitchenStreamHandler) Stop() {
	h.cancel()
	h.logger.Info("Kitchen stream stopped", zap.Int("clients", h.ClientCount()))
}

// EventTypes implements shared.EventHandler
func (h *KitchenStreamHandler) EventTypes() []string {
	return []string{kitchen.EventTypeOrderCreated, kitchen.EventTypeOrderStatusChanged}
}

// Handle implements shared.EventHandler by broadcasting the event to every client
func (h *KitchenStreamHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal kitchen event: %w", err)
	}
	h.broadcast(SSEMessage{
		Event: event.EventType(),
		Data:  string(data),
		ID:    event.EventID().String(),
	})
	return nil
}

func (h *KitchenStreamHandler) broadcast(msg SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Chan <- msg:
		default:
			h.logger.Warn("Kitchen client queue full, dropping event",
				zap.String("client_id", client.ID),
				zap.String("event", msg.Event))
		}
	}
}

func (h *KitchenStreamHandler) sendHeartbeats() {
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.broadcast(SSEMessage{
				Event: "heartbeat",
				Data:  fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()),
			})
		}
	}
}

func (h *KitchenStreamHandler) register(userID string) (*SSEClient, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxClients > 0 && len(h.clients) >= h.maxClients {
		return nil, false
	}
	client := &SSEClient{
		ID:     uuid.New().String(),
		UserID: userID,
		Chan:   make(chan SSEMessage, h.bufferSize),
	}
	h.clients[client.ID] = client
	return client, true
}

func (h *KitchenStreamHandler) unregister(client *SSEClient) {
	h.mu.Lock()
	delete(h.clients, client.ID)
	h.mu.Unlock()
}

// Stream keeps the connection open and writes kitchen events as they happen
// GET /kitchen/stream
func (h *KitchenStreamHandler) Stream(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	client, ok := h.register(userID)
	if !ok {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Too many kitchen displays connected")
		return
	}
	defer h.unregister(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	h.logger.Info("Kitchen client connected",
		zap.String("client_id", client.ID),
		zap.String("user_id", userID))

	writeEvent(c.Writer, SSEMessage{
		Event: "connected",
		Data:  fmt.Sprintf(`{"client_id":%q,"timestamp":%d}`, client.ID, time.Now().Unix()),
	})
	c.Writer.Flush()

	reqCtx := c.Request.Context()
	for {
		select {
		case <-reqCtx.Done():
			h.logger.Info("Kitchen client disconnected", zap.String("client_id", client.ID))
			return
		case <-h.ctx.Done():
			return
		case msg := <-client.Chan:
			writeEvent(c.Writer, msg)
			c.Writer.Flush()
		}
	}
}

// ClientCount returns the number of connected displays
func (h *KitchenStreamHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func writeEvent(w io.Writer, msg SSEMessage) {
	if msg.Event != "" {
		fmt.Fprintf(w, "event: %s\n", msg.Event)
	}
	if msg.ID != "" {
		fmt.Fprintf(w, "id: %s\n", msg.ID)
	}
	fmt.Fprintf(w, "data: %s\n\n", msg.Data)
}
