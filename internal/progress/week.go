package progress

import (
	"encoding/json"
	"time"

	"github.com/stemsi/tutorhub-backend/internal/model"
)

// Weekdays lists day bucket names in week order, Sunday first.
var Weekdays = [7]string{
	time.Sunday.String(),
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
}

// Week is the Sunday to Saturday window around a reference date with the
// lectures falling inside it bucketed by weekday name.
type Week struct {
	Start    time.Time
	End      time.Time
	Lectures map[string][]model.Lecture
}

type weekJSON struct {
	WeekStart string                     `json:"week_start"`
	WeekEnd   string                     `json:"week_end"`
	Lectures  map[string][]model.Lecture `json:"lectures"`
}

// MarshalJSON renders the window as plain dates.
func (w Week) MarshalJSON() ([]byte, error) {
	return json.Marshal(weekJSON{
		WeekStart: w.Start.Format(model.DateLayout),
		WeekEnd:   w.End.Format(model.DateLayout),
		Lectures:  w.Lectures,
	})
}

// UnmarshalJSON reads the format produced by MarshalJSON. Used for cached weeks.
func (w *Week) UnmarshalJSON(data []byte) error {
	var raw weekJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(model.DateLayout, raw.WeekStart)
	if err != nil {
		return err
	}
	end, err := time.Parse(model.DateLayout, raw.WeekEnd)
	if err != nil {
		return err
	}
	w.Start, w.End = start, end
	w.Lectures = emptyBuckets()
	for day, lectures := range raw.Lectures {
		if _, ok := w.Lectures[day]; ok && lectures != nil {
			w.Lectures[day] = lectures
		}
	}
	return nil
}

// civilDate drops the clock and zone, keeping the wall-clock date of t.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekBounds returns the Sunday on or before ref and the Saturday after it,
// both as UTC midnight of the civil date.
func WeekBounds(ref time.Time) (start, end time.Time) {
	day := civilDate(ref)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

func emptyBuckets() map[string][]model.Lecture {
	buckets := make(map[string][]model.Lecture, len(Weekdays))
	for _, name := range Weekdays {
		buckets[name] = []model.Lecture{}
	}
	return buckets
}

// BuildWeek buckets lectures dated inside the week of ref. Both ends are
// inclusive, input order is kept and undated lectures are skipped.
func BuildWeek(ref time.Time, lectures []model.Lecture) Week {
	start, end := WeekBounds(ref)
	w := Week{Start: start, End: end, Lectures: emptyBuckets()}

	for _, l := range lectures {
		if l.Date.IsZero() {
			continue
		}
		day := civilDate(l.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		name := day.Weekday().String()
		w.Lectures[name] = append(w.Lectures[name], l)
	}
	return w
}
