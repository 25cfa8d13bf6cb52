package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"kiricut/internal/types"
)

// Timestamps at or past this value are treated as epoch seconds rather than
// stream offsets and the whole series is shifted to a zero origin.
const epochCutoffSec = 946684800 // 2000-01-01T00:00:00Z

type chatFile struct {
	Events []chatFileEvent `json:"events"`
}

type chatFileEvent struct {
	ReplayChatItemAction *replayChatItemAction `json:"replayChatItemAction"`
}

type replayChatItemAction struct {
	VideoOffsetTimeMsec string       `json:"videoOffsetTimeMsec"`
	Actions             []chatAction `json:"actions"`
}

type chatAction struct {
	AddChatItemAction *addChatItemAction `json:"addChatItemAction"`
}

type addChatItemAction struct {
	Item chatItem `json:"item"`
}

type chatItem struct {
	LiveChatTextMessageRenderer *textMessageRenderer `json:"liveChatTextMessageRenderer"`
}

type textMessageRenderer struct {
	TimestampUsec string      `json:"timestampUsec"`
	AuthorName    simpleText  `json:"authorName"`
	Message       messageRuns `json:"message"`
}

type simpleText struct {
	SimpleText string `json:"simpleText"`
}

type messageRuns struct {
	Runs []messageRun `json:"runs"`
}

type messageRun struct {
	Text string `json:"text"`
}

// ParseChat converts a yt-dlp live_chat json3 artifact into ordered
// ChatEvents. Non-text events (tickers, memberships, paid messages) are
// ignored; text events with unusable timestamps are skipped with a
// diagnostic. Only file-level corruption is an error.
func ParseChat(data []byte) ([]types.ChatEvent, []types.Diagnostic, error) {
	var f chatFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse chat file: %w", err)
	}

	events := make([]types.ChatEvent, 0, len(f.Events))
	var diags []types.Diagnostic
	for i, rec := range f.Events {
		replay := rec.ReplayChatItemAction
		if replay == nil {
			continue
		}
		renderer := findTextRenderer(replay.Actions)
		if renderer == nil {
			continue
		}

		ts, err := eventTimestamp(replay.VideoOffsetTimeMsec, renderer.TimestampUsec)
		if err != nil {
			diags = append(diags, types.Diagnostic{Record: i, Reason: fmt.Sprintf("chat event: %v", err)})
			continue
		}

		events = append(events, types.ChatEvent{
			Timestamp: ts,
			Author:    strings.TrimSpace(renderer.AuthorName.SimpleText),
			Message:   joinRuns(renderer.Message.Runs),
		})
	}

	normalizeTimestamps(events)
	sort.SliceStable(events, func(a, b int) bool { return events[a].Timestamp < events[b].Timestamp })
	return events, diags, nil
}

func findTextRenderer(actions []chatAction) *textMessageRenderer {
	for _, a := range actions {
		if a.AddChatItemAction == nil {
			continue
		}
		if r := a.AddChatItemAction.Item.LiveChatTextMessageRenderer; r != nil {
			return r
		}
	}
	return nil
}

// eventTimestamp prefers the replay offset (milliseconds from stream start,
// may be negative for pre-stream chat) and falls back to the absolute
// timestamp in microseconds.
func eventTimestamp(offsetMsec, usec string) (float64, error) {
	if offsetMsec != "" {
		ms, err := strconv.ParseFloat(offsetMsec, 64)
		if err != nil {
			return 0, fmt.Errorf("bad offset %q", offsetMsec)
		}
		return ms / 1000, nil
	}
	if usec != "" {
		us, err := strconv.ParseFloat(usec, 64)
		if err != nil {
			return 0, fmt.Errorf("bad timestamp %q", usec)
		}
		return us / 1e6, nil
	}
	return 0, fmt.Errorf("no timestamp")
}

func joinRuns(runs []messageRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// normalizeTimestamps shifts an epoch-based series to a zero origin. When
// the earliest timestamp is already a plausible stream offset the series is
// left untouched.
func normalizeTimestamps(events []types.ChatEvent) {
	if len(events) == 0 {
		return
	}
	min := events[0].Timestamp
	for _, ev := range events[1:] {
		if ev.Timestamp < min {
			min = ev.Timestamp
		}
	}
	if min < epochCutoffSec {
		return
	}
	for i := range events {
		events[i].Timestamp -= min
	}
}
