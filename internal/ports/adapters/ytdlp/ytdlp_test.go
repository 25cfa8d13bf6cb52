package ytdlp

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	a := New("", 0)
	if a.bin != "yt-dlp" {
		t.Errorf("bin = %q, want yt-dlp", a.bin)
	}
	if a.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", a.timeout, defaultTimeout)
	}

	a = New("/opt/yt-dlp", time.Minute)
	if a.bin != "/opt/yt-dlp" || a.timeout != time.Minute {
		t.Errorf("adapter = %+v, want configured values kept", a)
	}
}

func TestClassifyError(t *testing.T) {
	base := errors.New("exit status 1")
	tests := []struct {
		name    string
		output  string
		wantSub string
	}{
		{"private", "ERROR: [youtube] abc: Private video. Sign in.", "is private"},
		{"unavailable", "ERROR: [youtube] abc: Video unavailable", "is unavailable"},
		{"network", "ERROR: Unable to download webpage: <urlopen error>", "network failure"},
		{"unknown", "ERROR: something new", "yt-dlp failed for"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError("vid12345678", base, tt.output)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("error %q does not contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestClassifyError_TruncatesOutput(t *testing.T) {
	long := strings.Repeat("x", 2000)
	err := classifyError("vid12345678", errors.New("exit status 1"), long)
	if len(err.Error()) > 600 {
		t.Fatalf("error length = %d, want raw output truncated", len(err.Error()))
	}
}
