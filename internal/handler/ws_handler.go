package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/middleware"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
	ws "github.com/stemsi/tutorhub-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

type announcementSubscriber interface {
	Subscribe(ctx context.Context) <-chan model.Announcement
}

// WSHandler streams announcements over WebSocket.
type WSHandler struct {
	bus      announcementSubscriber
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(bus announcementSubscriber, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		bus:      bus,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// AnnouncementStream godoc
// WS /ws/v1/announcements?token=
// Pushes each new announcement the caller is allowed to see. Clients may
// send {"action":"ping"} and get a pong event back.
func (h *WSHandler) AnnouncementStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Str("role", string(claims.Role)).Logger()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	announcements := h.bus.Subscribe(ctx)
	pings := make(chan struct{}, 4)
	done := make(chan struct{})

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(ws.PongWait))
	})

	// Reader: the only goroutine that reads from conn.
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			if msg.Action != ws.ActionPing {
				wsLog.Debug().Str("action", string(msg.Action)).Msg("Ignoring unknown action")
				continue
			}
			select {
			case pings <- struct{}{}:
			default:
			}
		}
	}()

	if err := ws.WriteTyped(conn, ws.ReadyResponse{Event: ws.EventReady}); err != nil {
		return
	}
	wsLog.Info().Msg("Announcement stream connected")

	ticker := time.NewTicker(ws.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Announcement stream closed")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		case a, ok := <-announcements:
			if !ok {
				ws.WriteError(conn, "announcement stream unavailable")
				return
			}
			if !a.VisibleTo(claims.Role, claims.StandardID) {
				continue
			}
			if err := ws.WriteTyped(conn, ws.AnnouncementEvent{Event: ws.EventAnnouncement, Announcement: a}); err != nil {
				wsLog.Warn().Err(err).Msg("Failed to push announcement")
				return
			}
		}
	}
}
