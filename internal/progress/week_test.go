package progress

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stemsi/tutorhub-backend/internal/model"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestWeekBounds(t *testing.T) {
	start, end := WeekBounds(date(t, "2024-06-12"))
	if got := start.Format(model.DateLayout); got != "2024-06-09" {
		t.Errorf("start = %s, want 2024-06-09", got)
	}
	if got := end.Format(model.DateLayout); got != "2024-06-15" {
		t.Errorf("end = %s, want 2024-06-15", got)
	}
}

func TestWeekBoundsEveryDay(t *testing.T) {
	ref := date(t, "2023-12-25")
	for i := 0; i < 30; i++ {
		day := ref.AddDate(0, 0, i)
		start, end := WeekBounds(day)
		if start.Weekday() != time.Sunday {
			t.Fatalf("%s: start %s is a %s", day, start, start.Weekday())
		}
		if end.Sub(start) != 6*24*time.Hour {
			t.Fatalf("%s: window is %s", day, end.Sub(start))
		}
		if day.Before(start) || day.After(end) {
			t.Fatalf("%s outside [%s, %s]", day, start, end)
		}
	}
}

func TestWeekBoundsIgnoresClockAndZone(t *testing.T) {
	zone := time.FixedZone("UTC+7", 7*3600)
	// Saturday late evening local time is still Saturday.
	ref := time.Date(2024, 6, 15, 23, 30, 0, 0, zone)
	start, _ := WeekBounds(ref)
	if got := start.Format(model.DateLayout); got != "2024-06-09" {
		t.Fatalf("start = %s, want 2024-06-09", got)
	}
}

func TestBuildWeek(t *testing.T) {
	lectures := []model.Lecture{
		{ID: 1, Date: date(t, "2024-06-09")}, // week start, Sunday
		{ID: 2, Date: date(t, "2024-06-12")},
		{ID: 3, Date: date(t, "2024-06-15")}, // week end, Saturday
		{ID: 4, Date: date(t, "2024-06-08")}, // previous Saturday
		{ID: 5, Date: date(t, "2024-06-16")}, // next Sunday
		{ID: 6},                              // undated
		{ID: 7, Date: date(t, "2024-06-12")},
	}

	w := BuildWeek(date(t, "2024-06-12"), lectures)

	if len(w.Lectures) != 7 {
		t.Fatalf("want 7 buckets, got %d", len(w.Lectures))
	}
	ids := func(day string) []int {
		var out []int
		for _, l := range w.Lectures[day] {
			out = append(out, l.ID)
		}
		return out
	}
	if got := ids("Sunday"); len(got) != 1 || got[0] != 1 {
		t.Errorf("Sunday = %v, want [1]", got)
	}
	if got := ids("Saturday"); len(got) != 1 || got[0] != 3 {
		t.Errorf("Saturday = %v, want [3]", got)
	}
	if got := ids("Wednesday"); len(got) != 2 || got[0] != 2 || got[1] != 7 {
		t.Errorf("Wednesday = %v, want [2 7]", got)
	}
	for _, day := range []string{"Monday", "Tuesday", "Thursday", "Friday"} {
		if len(w.Lectures[day]) != 0 {
			t.Errorf("%s should be empty, got %v", day, ids(day))
		}
	}
}

func TestBuildWeekEmpty(t *testing.T) {
	w := BuildWeek(date(t, "2024-06-12"), nil)

	if w.Start.Format(model.DateLayout) != "2024-06-09" || w.End.Format(model.DateLayout) != "2024-06-15" {
		t.Fatalf("bounds = %s..%s", w.Start, w.End)
	}

	raw, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	var buckets map[string]json.RawMessage
	if err := json.Unmarshal(decoded["lectures"], &buckets); err != nil {
		t.Fatal(err)
	}
	if len(buckets) != 7 {
		t.Fatalf("want 7 buckets in JSON, got %d", len(buckets))
	}
	for day, v := range buckets {
		if string(v) != "[]" {
			t.Errorf("%s = %s, want []", day, v)
		}
	}
	if string(decoded["week_start"]) != `"2024-06-09"` {
		t.Errorf("week_start = %s", decoded["week_start"])
	}
}

func TestWeekJSONRoundTripKeepsBuckets(t *testing.T) {
	w := BuildWeek(date(t, "2024-06-12"), []model.Lecture{{ID: 9, Date: date(t, "2024-06-13")}})
	raw, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	var back Week
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Start.Equal(w.Start) || !back.End.Equal(w.End) {
		t.Fatalf("bounds changed: %s..%s", back.Start, back.End)
	}
	if len(back.Lectures["Thursday"]) != 1 || back.Lectures["Thursday"][0].ID != 9 {
		t.Fatalf("Thursday = %+v", back.Lectures["Thursday"])
	}
	if back.Lectures["Monday"] == nil {
		t.Fatal("Monday bucket must be non-nil")
	}
}
