package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

// RedisAttendanceQueue pushes bulk attendance jobs for the attendance worker.
type RedisAttendanceQueue struct {
	rdb *redis.Client
}

// NewRedisAttendanceQueue creates a new RedisAttendanceQueue.
func NewRedisAttendanceQueue(rdb *redis.Client) *RedisAttendanceQueue {
	return &RedisAttendanceQueue{rdb: rdb}
}

// Enqueue appends all jobs in one RPUSH so a request is queued atomically.
func (q *RedisAttendanceQueue) Enqueue(ctx context.Context, jobs []model.AttendanceJob) error {
	values := make([]interface{}, 0, len(jobs))
	for _, j := range jobs {
		raw, err := json.Marshal(j)
		if err != nil {
			return fmt.Errorf("marshal attendance job: %w", err)
		}
		values = append(values, raw)
	}
	return q.rdb.RPush(ctx, config.WorkerKey.AttendanceQueue, values...).Err()
}
