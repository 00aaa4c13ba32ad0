package timezone

import (
	"testing"
	"time"
)

func TestDateOfCrossesMidnightInZone(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on Saturday is already Sunday in IST.
	instant := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)

	got := DateOf(instant, kolkata)
	want := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf = %s, want %s", got, want)
	}
	if got := DateOf(instant, nil); !got.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateOf(nil loc) = %s", got)
	}
}

func TestLoad(t *testing.T) {
	loc, err := Load("")
	if err != nil || loc != time.UTC {
		t.Fatalf("Load(\"\") = %v, %v", loc, err)
	}
	if _, err := Load("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}

func TestParseDateOr(t *testing.T) {
	got, err := ParseDateOr("2024-06-12", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format("2006-01-02") != "2024-06-12" {
		t.Errorf("got %s", got)
	}
	if _, err := ParseDateOr("12/06/2024", time.UTC); err == nil {
		t.Error("expected error for non ISO date")
	}
	if got, _ := ParseDateOr("", time.UTC); got.IsZero() {
		t.Error("empty input should resolve to today")
	}
}

func TestAt(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	got, err := At(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), "09:30", loc)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 6, 12, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("At = %s, want %s", got, want)
	}
	if _, err := At(got, "9.30", loc); err == nil {
		t.Error("expected parse error")
	}
}
