package websocket

import "github.com/stemsi/tutorhub-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventReady        Event = "ready"
	EventAnnouncement Event = "announcement"
	EventPong         Event = "pong"
)

// ReadyResponse is sent once the stream is subscribed.
type ReadyResponse struct {
	Event Event `json:"event"`
}

// AnnouncementEvent carries one newly published announcement.
type AnnouncementEvent struct {
	Event        Event              `json:"event"`
	Announcement model.Announcement `json:"announcement"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
