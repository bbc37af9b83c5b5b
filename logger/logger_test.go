package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("level = %q, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("format = %q, want console", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("output = %q, want stdout", cfg.Output)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "verbose", Format: "json", Output: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown level")
	}

	cfg = Config{Level: "debug", Format: "xml", Output: "stdout"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}

	cfg = Config{Level: "debug", Format: "json", Output: "stderr"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLogger_FieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log := FromZerolog(zerolog.New(&buf)).
		WithComponent("engine").
		WithFields(map[string]any{"req_id": "r1"})

	log.Info("request started", map[string]any{"method": "GET"})

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event["component"] != "engine" {
		t.Errorf("component = %v, want engine", event["component"])
	}
	if event["req_id"] != "r1" {
		t.Errorf("req_id = %v, want r1", event["req_id"])
	}
	if event["method"] != "GET" {
		t.Errorf("method = %v, want GET", event["method"])
	}
	if event["message"] != "request started" {
		t.Errorf("message = %v", event["message"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := FromZerolog(zerolog.New(&buf).Level(zerolog.InfoLevel))

	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug event emitted despite info level: %s", buf.String())
	}

	log.Error("visible")
	if buf.Len() == 0 {
		t.Error("error event not emitted")
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := FromZerolog(zerolog.New(&buf))

	log.WithError(errTest).Error("request failed")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event["error"] != "connection reset" {
		t.Errorf("error = %v", event["error"])
	}
}

var errTest = errTestType{}

type errTestType struct{}

func (errTestType) Error() string { return "connection reset" }
