package scheduler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/metrics"
)

type fakePrewarmer struct {
	ref time.Time
	err error
}

func (f *fakePrewarmer) PrewarmWeek(_ context.Context, ref time.Time) (int, error) {
	f.ref = ref
	return 3, f.err
}

func TestAddPrewarmRejectsBadSpec(t *testing.T) {
	s := New(time.UTC, zerolog.New(io.Discard))
	if err := s.AddPrewarm("every tuesday", &fakePrewarmer{}); err == nil {
		t.Fatal("expected parse error")
	}
	if err := s.AddPrewarm("5 0 * * 0", &fakePrewarmer{}); err != nil {
		t.Fatalf("valid spec: %v", err)
	}
}

func TestRunPrewarmRecordsOutcome(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	s := New(loc, zerolog.New(io.Discard))

	ok := metrics.CronRuns.WithLabelValues("schedule_prewarm", "ok")
	failed := metrics.CronRuns.WithLabelValues("schedule_prewarm", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	p := &fakePrewarmer{}
	s.runPrewarm(p)
	if p.ref.Location() != time.UTC || p.ref.Hour() != 0 {
		t.Errorf("ref = %s, want a civil date at UTC midnight", p.ref)
	}
	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("ok runs += %v", got)
	}

	p.err = errors.New("db down")
	s.runPrewarm(p)
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("failed runs += %v", got)
	}
}

func TestStartStop(t *testing.T) {
	s := New(time.UTC, zerolog.New(io.Discard))
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestCronLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := cronLogger{zerolog.New(&buf)}

	l.Error(errors.New("boom"), "panic", "stack", "frame")
	out := buf.String()
	for _, want := range []string{`"error":"boom"`, `"stack":"frame"`, `"message":"panic"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %s missing %s", out, want)
		}
	}
}
