package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/metrics"
	"github.com/stemsi/tutorhub-backend/internal/model"
)

const (
	AttendanceBatchSize    = 200
	AttendanceBatchTimeout = 2 * time.Second
	AttendancePollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
	// AttendanceMaxAttempts is how often a row may fail before it is
	// parked on the dead-letter list.
	AttendanceMaxAttempts = 5
)

// queueClient is the subset of *redis.Client the worker uses.
type queueClient interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

type attendanceWriter interface {
	UpsertBatch(ctx context.Context, lectureIDs, studentIDs []int, statuses []string) (int64, error)
	Upsert(ctx context.Context, a *model.Attendance) error
}

// AttendanceWorker drains bulk attendance jobs from Redis into Postgres.
type AttendanceWorker struct {
	store attendanceWriter
	rdb   queueClient
	log   zerolog.Logger
}

func NewAttendanceWorker(store attendanceWriter, rdb queueClient, log zerolog.Logger) *AttendanceWorker {
	return &AttendanceWorker{
		store: store,
		rdb:   rdb,
		log:   log.With().Str("component", "attendance_worker").Logger(),
	}
}

// Start consumes the queue until ctx is cancelled, then flushes what it holds.
func (w *AttendanceWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AttendanceWorker started")

	batch := make([]model.AttendanceJob, 0, AttendanceBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= AttendanceBatchSize || time.Since(lastFlush) >= AttendanceBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(batch)).Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return
		default:
		}

		item, err := w.rdb.BLPop(ctx, AttendancePollTimeout, config.WorkerKey.AttendanceQueue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				w.reportDepth(ctx)
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			select {
			case <-time.After(3 * time.Second):
			case <-ctx.Done():
			}
			continue
		}

		if len(item) < 2 {
			continue
		}

		var job model.AttendanceJob
		if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
			w.log.Error().Err(err).Str("payload", item[1]).Msg("Invalid JSON payload, dropping")
			metrics.AttendanceFlushed.WithLabelValues("dropped").Inc()
			continue
		}
		batch = append(batch, job)
	}
}

func (w *AttendanceWorker) reportDepth(ctx context.Context) {
	if n, err := w.rdb.LLen(ctx, config.WorkerKey.AttendanceQueue).Result(); err == nil {
		metrics.AttendanceQueueDepth.Set(float64(n))
	}
}

// dedupe keeps the last job for each (lecture, student) pair. A batch
// upsert cannot touch the same row twice.
func dedupe(batch []model.AttendanceJob) []model.AttendanceJob {
	type key struct{ lecture, student int }
	index := make(map[key]int, len(batch))
	out := make([]model.AttendanceJob, 0, len(batch))
	for _, j := range batch {
		k := key{j.LectureID, j.StudentID}
		if i, ok := index[k]; ok {
			out[i] = j
			continue
		}
		index[k] = len(out)
		out = append(out, j)
	}
	return out
}

// flushSafe writes a batch, falling back to row-by-row upserts when the
// batch statement fails. Rows that still fail go back on the queue until
// they run out of attempts.
func (w *AttendanceWorker) flushSafe(ctx context.Context, batch []model.AttendanceJob) {
	if len(batch) == 0 {
		return
	}
	jobs := dedupe(batch)

	lectureIDs := make([]int, len(jobs))
	studentIDs := make([]int, len(jobs))
	statuses := make([]string, len(jobs))
	for i, j := range jobs {
		lectureIDs[i] = j.LectureID
		studentIDs[i] = j.StudentID
		statuses[i] = string(j.Status)
	}

	n, err := w.store.UpsertBatch(ctx, lectureIDs, studentIDs, statuses)
	if err == nil {
		metrics.AttendanceFlushed.WithLabelValues("batch").Add(float64(len(jobs)))
		w.log.Debug().Int("jobs", len(jobs)).Int64("rows", n).Msg("Attendance batch flushed")
		return
	}

	w.log.Warn().Err(err).Int("jobs", len(jobs)).Msg("Bulk attendance upsert failed, using fallback")
	for _, j := range jobs {
		a := &model.Attendance{LectureID: j.LectureID, StudentID: j.StudentID, Status: j.Status}
		if err := w.store.Upsert(ctx, a); err != nil {
			w.retry(ctx, j, err)
			continue
		}
		metrics.AttendanceFlushed.WithLabelValues("single").Inc()
	}
}

func (w *AttendanceWorker) retry(ctx context.Context, j model.AttendanceJob, cause error) {
	j.Attempts++
	key, outcome := config.WorkerKey.AttendanceQueue, "requeued"
	if j.Attempts >= AttendanceMaxAttempts {
		key, outcome = config.WorkerKey.AttendanceDeadLetter, "dead"
	}

	w.log.Error().Err(cause).
		Int("lecture_id", j.LectureID).
		Int("student_id", j.StudentID).
		Int("attempts", j.Attempts).
		Str("outcome", outcome).
		Msg("Single attendance upsert failed")
	metrics.AttendanceFlushed.WithLabelValues(outcome).Inc()

	raw, _ := json.Marshal(j)
	if err := w.rdb.RPush(ctx, key, raw).Err(); err != nil {
		w.log.Error().Err(err).Str("key", key).Msg("Could not push failed attendance job")
	}
}
