package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"kiricut/internal/store"
	"kiricut/internal/types"
	"kiricut/internal/usecase"
)

func chatFixture() []byte {
	record := func(offsetMsec int, author, text string) string {
		return fmt.Sprintf(
			`{"replayChatItemAction":{"videoOffsetTimeMsec":"%d","actions":[{"addChatItemAction":{"item":{"liveChatTextMessageRenderer":{"authorName":{"simpleText":%q},"message":{"runs":[{"text":%q}]}}}}}]}}`,
			offsetMsec, author, text)
	}
	records := []string{
		record(10000, "alice", "www"),
		record(12000, "bob", "www"),
		record(15000, "alice", "w"),
	}
	return []byte(`{"events":[` + strings.Join(records, ",") + `]}`)
}

func subtitleFixture(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(types.SubtitleFile{
		VideoID:  "vid123",
		Language: "ja",
		Subtitles: []types.SubtitleCue{
			{Text: "こんにちは", Start: 0, Duration: 5},
			{Text: "それでは次へ", Start: 55, Duration: 5},
		},
	})
	if err != nil {
		t.Fatalf("marshal subtitle fixture: %v", err)
	}
	return b
}

func testConfig(t *testing.T) Config {
	t.Helper()
	params := usecase.DefaultParams()
	params.WindowSec = 30
	params.Keywords = []string{"w"}
	return Config{
		VideoID: "vid123",
		DataDir: t.TempDir(),
		Params:  params,
		Logf:    t.Logf,
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty video id", mutate: func(c *Config) { c.VideoID = "" }, wantErr: "video id"},
		{name: "http base url", mutate: func(c *Config) { c.TimedtextBaseURL = "http://www.youtube.com" }, wantErr: "https is required"},
		{name: "unknown host", mutate: func(c *Config) { c.TimedtextBaseURL = "https://evil.example" }, wantErr: "TIMEDTEXT_ALLOWED_HOSTS"},
		{
			name: "allowed extra host",
			mutate: func(c *Config) {
				c.TimedtextBaseURL = "https://proxy.internal"
				c.TimedtextAllowedHosts = []string{"proxy.internal"}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate: %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDataDirDefault(t *testing.T) {
	if got := (Config{}).dataDir(); got != "data" {
		t.Fatalf("dataDir = %q, want data", got)
	}
	if got := (Config{DataDir: "/tmp/x"}).dataDir(); got != "/tmp/x" {
		t.Fatalf("dataDir = %q, want /tmp/x", got)
	}
}

func TestAnalyze_FromCachedArtifacts(t *testing.T) {
	cfg := testConfig(t)

	st, err := store.New(cfg.DataDir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if err := st.WriteChat(cfg.VideoID, chatFixture()); err != nil {
		t.Fatalf("WriteChat: %v", err)
	}
	if err := st.WriteSubtitles(cfg.VideoID, subtitleFixture(t)); err != nil {
		t.Fatalf("WriteSubtitles: %v", err)
	}

	report, err := Analyze(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Duration != 60 {
		t.Errorf("duration = %v, want 60", report.Duration)
	}
	if len(report.Windows) != 2 {
		t.Errorf("windows = %d, want 2", len(report.Windows))
	}
	if len(report.Candidates) == 0 {
		t.Fatal("no candidates from a flagged window")
	}
	if !strings.HasPrefix(report.Candidates[0].URL, "https://www.youtube.com/watch?v=vid123") {
		t.Errorf("candidate url = %q", report.Candidates[0].URL)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	cfg := testConfig(t)

	st, err := store.New(cfg.DataDir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if err := st.WriteChat(cfg.VideoID, chatFixture()); err != nil {
		t.Fatalf("WriteChat: %v", err)
	}
	if err := st.WriteSubtitles(cfg.VideoID, subtitleFixture(t)); err != nil {
		t.Fatalf("WriteSubtitles: %v", err)
	}

	first, err := Analyze(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first Analyze: %v", err)
	}
	second, err := Analyze(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second Analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs diverge:\n%+v\n%+v", first, second)
	}
}

func TestAnalyze_NoCachedData(t *testing.T) {
	cfg := testConfig(t)
	_, err := Analyze(context.Background(), cfg)
	if !errors.Is(err, usecase.ErrNoData) {
		t.Fatalf("Analyze = %v, want ErrNoData", err)
	}
}

func TestExportCSV(t *testing.T) {
	report := types.Report{
		Candidates: []types.ClipCandidate{
			{Start: 95, End: 155, Score: 1.75, Reasons: []string{"comment spike", "topic alignment"}, URL: "https://www.youtube.com/watch?v=vid123&t=95s"},
			{Start: 0, End: 30, Score: 0.5, Reasons: []string{"comment spike"}, URL: "https://www.youtube.com/watch?v=vid123"},
		},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, report); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "rank" || rows[0][6] != "url" {
		t.Errorf("header = %v", rows[0])
	}
	first := rows[1]
	if first[0] != "1" || first[1] != "1:35" || first[2] != "2:35" {
		t.Errorf("first row = %v, want rank 1 spanning 1:35-2:35", first)
	}
	if first[3] != "60.0" || first[4] != "1.750" {
		t.Errorf("first row duration/score = %v/%v", first[3], first[4])
	}
	if first[5] != "comment spike; topic alignment" {
		t.Errorf("first row reasons = %q", first[5])
	}
}

func TestExportJSON_Roundtrip(t *testing.T) {
	report := types.Report{
		VideoID:  "vid123",
		Duration: 60,
		HasChat:  true,
		Candidates: []types.ClipCandidate{
			{Start: 0, End: 30, Score: 1, Reasons: []string{"comment spike"}},
		},
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, report); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var back types.Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal exported report: %v", err)
	}
	if !reflect.DeepEqual(report, back) {
		t.Errorf("roundtrip mismatch:\n%+v\n%+v", report, back)
	}
}
