package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLoggerWithService(t *testing.T) {
	l := NewLoggerWithService("svc-a")
	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.WithField("k", "v").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["service"] != "svc-a" {
		t.Errorf("service = %v, want svc-a", entry["service"])
	}
	if entry["k"] != "v" {
		t.Errorf("k = %v, want v", entry["k"])
	}
	if entry["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", entry["msg"])
	}
}

func TestGetLogLevelDefault(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	l := NewLogger()
	if !l.IsLevelEnabled(logrus.InfoLevel) {
		t.Fatalf("expected info enabled by default")
	}
	if l.IsLevelEnabled(logrus.DebugLevel) {
		t.Fatalf("debug should be off by default")
	}
}
