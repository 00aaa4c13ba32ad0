package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

// RedisAnnouncementBus fans new announcements out to every API instance.
type RedisAnnouncementBus struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisAnnouncementBus creates a new RedisAnnouncementBus.
func NewRedisAnnouncementBus(rdb *redis.Client, log zerolog.Logger) *RedisAnnouncementBus {
	return &RedisAnnouncementBus{
		rdb: rdb,
		log: log.With().Str("component", "announcement_bus").Logger(),
	}
}

func (b *RedisAnnouncementBus) Publish(ctx context.Context, a *model.Announcement) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, config.CacheKey.AnnouncementsChannel(), raw).Err()
}

// Subscribe streams announcements until ctx is done. The channel is closed
// when the subscription ends.
func (b *RedisAnnouncementBus) Subscribe(ctx context.Context) <-chan model.Announcement {
	out := make(chan model.Announcement, 16)
	pubsub := b.rdb.Subscribe(ctx, config.CacheKey.AnnouncementsChannel())

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var a model.Announcement
				if err := json.Unmarshal([]byte(msg.Payload), &a); err != nil {
					b.log.Warn().Err(err).Msg("Dropping malformed announcement payload")
					continue
				}
				select {
				case out <- a:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
