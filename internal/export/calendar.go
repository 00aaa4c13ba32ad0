package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
)

// WeekCalendar writes the week's lectures as an iCalendar feed. Lecture
// wall times are interpreted in loc.
func WeekCalendar(w io.Writer, name string, week progress.Week, loc *time.Location) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetName(name)
	cal.SetProductId("-//tutorhub//schedule//EN")

	stamp := time.Now().UTC()
	for _, day := range progress.Weekdays {
		for _, l := range week.Lectures[day] {
			start, err := timezone.At(l.Date, l.StartTime, loc)
			if err != nil {
				return fmt.Errorf("lecture %d: %w", l.ID, err)
			}
			end, err := timezone.At(l.Date, l.EndTime, loc)
			if err != nil {
				return fmt.Errorf("lecture %d: %w", l.ID, err)
			}

			summary := l.SubjectName
			if l.IsTest() {
				summary = "[TEST] " + summary
			}

			ev := cal.AddEvent(fmt.Sprintf("lecture-%d@tutorhub", l.ID))
			ev.SetDtStampTime(stamp)
			ev.SetSummary(summary)
			ev.SetDescription(fmt.Sprintf("%s with %s", l.StandardName, l.TutorName))
			ev.SetLocation(l.StandardName)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
		}
	}

	return cal.SerializeTo(w)
}
