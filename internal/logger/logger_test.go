package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewJSONFormatTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(New(&buf, "debug", "json"), "attendance_worker")

	log.Info().Int("batch", 3).Msg("flushed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "attendance_worker" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["service"] != "tutorhub" {
		t.Errorf("service = %v", entry["service"])
	}
	if entry["message"] != "flushed" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	_ = New(&buf, "loud", "json")
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Errorf("global level = %s, want info", got)
	}
}
