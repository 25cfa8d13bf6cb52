package parser

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:       "0:00",
		9.7:     "0:09",
		65:      "1:05",
		600:     "10:00",
		3600:    "1:00:00",
		3725:    "1:02:05",
		-5:      "0:00",
		7326.99: "2:02:06",
	}
	for in, want := range tests {
		if got := FormatTimestamp(in); got != want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"live url", "https://www.youtube.com/live/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ", false},
		{"whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ", false},
		{"garbage", "not a video", "", true},
		{"short id", "abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ExtractVideoID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ", 0); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := WatchURL("dQw4w9WgXcQ", 93.6); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=93s" {
		t.Fatalf("unexpected seeked url: %s", got)
	}
}
