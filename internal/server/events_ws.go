package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/events"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
)

const wsWriteTimeout = 5 * time.Second

// EventsWebSocketHandler streams bus events over a websocket connection.
// Messages match the SSE feed; anything the client sends is ignored.
type EventsWebSocketHandler struct {
	eventBus  *events.Bus
	options   *websocket.AcceptOptions
	heartbeat time.Duration
	log       zerolog.Logger
}

// NewEventsWebSocketHandler creates a websocket feed that accepts the
// configured CORS origins
func NewEventsWebSocketHandler(eventBus *events.Bus, cfg *config.Config, log zerolog.Logger) *EventsWebSocketHandler {
	return &EventsWebSocketHandler{
		eventBus:  eventBus,
		options:   acceptOptions(cfg),
		heartbeat: heartbeatInterval,
		log:       log.With().Str("component", "events_ws").Logger(),
	}
}

func acceptOptions(cfg *config.Config) *websocket.AcceptOptions {
	if cfg.AllowsAnyOrigin() {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}

	// Origin patterns match hosts, not full origins
	patterns := make([]string, 0, len(cfg.CORSOrigins))
	for _, origin := range cfg.CORSOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		} else {
			patterns = append(patterns, origin)
		}
	}
	return &websocket.AcceptOptions{OriginPatterns: patterns}
}

// ServeHTTP handles GET /api/events/ws requests
func (h *EventsWebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, h.options)
	if err != nil {
		// Accept has already written the error response
		h.log.Warn().Err(err).Msg("Websocket handshake failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	feed := newEventFeed(h.eventBus, parseTypesFilter(r.URL.Query().Get("types")), h.log)
	defer feed.Close()

	// CloseRead discards client messages and cancels ctx once the peer goes away
	ctx := conn.CloseRead(r.Context())

	h.log.Info().Msg("Client connected to websocket feed")

	if err := h.write(ctx, conn, connectedMessage()); err != nil {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("Client disconnected from websocket feed")
			conn.Close(websocket.StatusNormalClosure, "")
			return

		case event := <-feed.Events():
			if err := h.write(ctx, conn, eventMessage(event)); err != nil {
				return
			}

		case <-heartbeat.C:
			if err := h.write(ctx, conn, heartbeatMessage()); err != nil {
				return
			}
		}
	}
}

func (h *EventsWebSocketHandler) write(ctx context.Context, conn *websocket.Conn, message map[string]interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to marshal event")
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()

	if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		h.log.Debug().Err(err).Msg("Websocket write failed")
		return err
	}
	return nil
}
