// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/metrics"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
)

// JobTimeout bounds a single job run.
const JobTimeout = 2 * time.Minute

type weekPrewarmer interface {
	PrewarmWeek(ctx context.Context, ref time.Time) (int, error)
}

// Scheduler wraps a cron runner whose specs are read in the school zone.
type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location
	log  zerolog.Logger
}

// New creates a Scheduler. Panicking jobs are recovered and logged, and a
// job still running when its next slot comes is skipped.
func New(loc *time.Location, log zerolog.Logger) *Scheduler {
	log = log.With().Str("component", "scheduler").Logger()
	cl := cronLogger{log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		loc: loc,
		log: log,
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// AddPrewarm registers the weekly schedule prewarm under spec.
func (s *Scheduler) AddPrewarm(spec string, lectures weekPrewarmer) error {
	_, err := s.cron.AddFunc(spec, func() { s.runPrewarm(lectures) })
	return err
}

func (s *Scheduler) runPrewarm(lectures weekPrewarmer) {
	ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
	defer cancel()

	start := time.Now()
	n, err := lectures.PrewarmWeek(ctx, timezone.Today(s.loc))
	if err != nil {
		metrics.CronRuns.WithLabelValues("schedule_prewarm", "error").Inc()
		s.log.Error().Err(err).Int("weeks", n).Msg("Schedule prewarm failed")
		return
	}
	metrics.CronRuns.WithLabelValues("schedule_prewarm", "ok").Inc()
	s.log.Info().Int("weeks", n).Dur("took", time.Since(start)).Msg("Schedule prewarmed")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
}
