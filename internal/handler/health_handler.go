package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process and dependency health.
type HealthHandler struct {
	db        pinger
	redis     func(ctx context.Context) error
	startTime time.Time
	log       zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db pinger, redis func(ctx context.Context) error, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		startTime: time.Now(),
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func check(ctx context.Context, ping func(ctx context.Context) error) dependencyStatus {
	if err := ping(ctx); err != nil {
		return dependencyStatus{Status: "down", Error: err.Error()}
	}
	return dependencyStatus{Status: "up"}
}

// Health godoc
// GET /health
// Pings Postgres and Redis. Answers 503 when either is unreachable.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	postgres := check(ctx, h.db.Ping)
	redis := check(ctx, h.redis)

	status := http.StatusOK
	overall := "ok"
	if postgres.Status != "up" || redis.Status != "up" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
		h.log.Warn().
			Str("postgres", postgres.Status).
			Str("redis", redis.Status).
			Msg("Health check failed")
	}

	response.Success(c, status, gin.H{
		"status":     overall,
		"uptime":     formatDuration(time.Since(h.startTime)),
		"goroutines": runtime.NumGoroutine(),
		"go_version": runtime.Version(),
		"postgres":   postgres,
		"redis":      redis,
	})
}

func formatDuration(d time.Duration) string {
	return d.Truncate(time.Second).String()
}
