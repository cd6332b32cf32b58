package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/application/site"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/dto"
)

// SSEMessage is one Server-Sent Event
type SSEMessage struct {
	Event string
	Data  string
	ID    string
}

// SlideEvent is sent every time a carousel advances
type SlideEvent struct {
	Stream string `json:"stream"`
	Slide  int    `json:"slide"`
}

// CarouselHandler streams carousel autoplay ticks to the browser and lets
// the page pause the stream while the pointer hovers the carousel.
type CarouselHandler struct {
	BaseHandler
	autoplays  *site.Autoplays
	logger     *zap.Logger
	heartbeat  time.Duration
	maxStreams int

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// CarouselOption configures a CarouselHandler
type CarouselOption func(*CarouselHandler)

// WithCarouselLogger sets the logger
func WithCarouselLogger(logger *zap.Logger) CarouselOption {
	return func(h *CarouselHandler) { h.logger = logger }
}

// WithCarouselHeartbeat sets the heartbeat interval
func WithCarouselHeartbeat(d time.Duration) CarouselOption {
	return func(h *CarouselHandler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithCarouselMaxStreams caps the number of concurrent streams
func WithCarouselMaxStreams(n int) CarouselOption {
	return func(h *CarouselHandler) {
		if n > 0 {
			h.maxStreams = n
		}
	}
}

// NewCarouselHandler creates the carousel stream handler
func NewCarouselHandler(autoplays *site.Autoplays, opts ...CarouselOption) *CarouselHandler {
	ctx, cancel := context.WithCancel(context.Background())
	h := &CarouselHandler{
		autoplays:  autoplays,
		logger:     zap.NewNop(),
		heartbeat:  30 * time.Second,
		maxStreams: 1000,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Stop ends every open stream
func (h *CarouselHandler) Stop() {
	h.once.Do(func() {
		h.cancel()
		h.logger.Info("Carousel streams stopped")
	})
}

// Running returns the number of open streams
func (h *CarouselHandler) Running() int {
	return h.autoplays.Running()
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Stream opens an autoplay stream for a carousel of items cards shown per
// at a time, starting at slide start.
func (h *CarouselHandler) Stream(c *gin.Context) {
	items := queryInt(c, "items", 0)
	per := queryInt(c, "per", 1)
	start := queryInt(c, "start", 0)
	if items < 0 || per < 1 {
		h.BadRequest(c, "items and per must be positive")
		return
	}
	if h.maxStreams > 0 && h.autoplays.Running() >= h.maxStreams {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "Maximum number of carousel streams reached")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	go func() {
		select {
		case <-h.ctx.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	slides := make(chan int, 8)
	id, ap := h.autoplays.Start(ctx, items, per, start, func(slide int) {
		select {
		case slides <- slide:
		default:
			h.logger.Debug("Carousel stream slow, dropping slide")
		}
	})
	defer ap.Stop()

	streamLog := log(c).With(zap.String("stream_id", id))
	streamLog.Debug("Carousel stream opened", zap.Int("items", items), zap.Int("per", per))

	h.send(c.Writer, "connected", map[string]any{"stream": id})
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			streamLog.Debug("Carousel stream closed")
			return
		case <-ticker.C:
			h.send(c.Writer, "heartbeat", map[string]any{"timestamp": time.Now().Unix()})
			c.Writer.Flush()
		case slide := <-slides:
			h.send(c.Writer, "slide", SlideEvent{Stream: id, Slide: slide})
			c.Writer.Flush()
		}
	}
}

func (h *CarouselHandler) send(w io.Writer, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal SSE event", zap.Error(err))
		return
	}
	writeEvent(w, SSEMessage{Event: event, Data: string(data)})
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

// Pause pauses a stream while the pointer hovers its carousel
func (h *CarouselHandler) Pause(c *gin.Context) {
	if !h.autoplays.Pause(c.Param("id")) {
		h.NotFound(c, "Stream not found")
		return
	}
	h.NoContent(c)
}

// Resume resumes a paused stream
func (h *CarouselHandler) Resume(c *gin.Context) {
	if !h.autoplays.Resume(c.Param("id")) {
		h.NotFound(c, "Stream not found")
		return
	}
	h.NoContent(c)
}
