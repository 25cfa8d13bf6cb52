package mockdata

import (
	"encoding/json"
	"fmt"
	"strconv"

	"kiricut/internal/store"
	"kiricut/internal/types"
)

// DefaultVideoID is the id mock artifacts are stored under when the caller
// does not pick one.
const DefaultVideoID = "mock_video"

const (
	baseComments   = 100
	burstComments  = 50
	burstStartSec  = 200
	commentGapSec  = 5
	subtitleCycles = 5
	subtitleGapSec = 5.0
	subtitleDurSec = 4.0
)

var baseMessages = []string{"草", "ww", "すごい", "やばい", "！！", "笑", "www", "面白い", "なるほど"}

const burstMessage = "草生える"

var sampleTexts = []string{
	"こんにちは、今日はゲーム実況をします",
	"まずはこのステージから始めます",
	"敵が出てきました",
	"次はボス戦です",
	"ここが難しいですね",
	"やった！クリアしました",
	"それでは次のステージに行きます",
	"このアイテムが重要です",
	"最後のボスです",
	"ありがとうございました",
}

// Write-side mirror of the chat replay wire shape. The parser owns the read
// side; keep the two in sync.
type chatFile struct {
	Events []chatFileEvent `json:"events"`
}

type chatFileEvent struct {
	ReplayChatItemAction replayAction `json:"replayChatItemAction"`
}

type replayAction struct {
	Actions []chatAction `json:"actions"`
}

type chatAction struct {
	AddChatItemAction addAction `json:"addChatItemAction"`
}

type addAction struct {
	Item chatItem `json:"item"`
}

type chatItem struct {
	LiveChatTextMessageRenderer textRenderer `json:"liveChatTextMessageRenderer"`
}

type textRenderer struct {
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

// BuildChat returns a chat artifact with a steady trickle of comments plus a
// dense burst between 200s and 250s, enough to trip the high-activity
// detector with default settings.
func BuildChat() ([]byte, error) {
	f := chatFile{Events: make([]chatFileEvent, 0, baseComments+burstComments)}
	for i := 0; i < baseComments; i++ {
		f.Events = append(f.Events, chatEvent(i*commentGapSec, fmt.Sprintf("User%d", i%10), baseMessages[i%len(baseMessages)]))
	}
	for i := 0; i < burstComments; i++ {
		f.Events = append(f.Events, chatEvent(burstStartSec+i, fmt.Sprintf("User%d", i%10), burstMessage))
	}
	return json.MarshalIndent(f, "", "  ")
}

func chatEvent(sec int, author, text string) chatFileEvent {
	return chatFileEvent{
		ReplayChatItemAction: replayAction{
			Actions: []chatAction{{
				AddChatItemAction: addAction{
					Item: chatItem{
						LiveChatTextMessageRenderer: textRenderer{
							TimestampUsec: strconv.FormatInt(int64(sec)*1_000_000, 10),
							AuthorName:    simpleText{SimpleText: author},
							Message:       messageRuns{Runs: []messageRun{{Text: text}}},
						},
					},
				},
			}},
		},
	}
}

// BuildSubtitles returns a subtitle artifact cycling through scripted lines,
// several of which carry topic markers.
func BuildSubtitles(videoID string) ([]byte, error) {
	file := types.SubtitleFile{
		VideoID:     videoID,
		Language:    "ja",
		IsGenerated: true,
		Subtitles:   make([]types.SubtitleCue, 0, subtitleCycles*len(sampleTexts)),
	}
	start := 0.0
	for cycle := 0; cycle < subtitleCycles; cycle++ {
		for _, text := range sampleTexts {
			file.Subtitles = append(file.Subtitles, types.SubtitleCue{
				Text:     text,
				Start:    start,
				Duration: subtitleDurSec,
			})
			start += subtitleGapSec
		}
	}
	return json.MarshalIndent(file, "", "  ")
}

// Write stores both mock artifacts under videoID so the analysis pipeline
// can run without touching the network.
func Write(st *store.Store, videoID string) error {
	if videoID == "" {
		videoID = DefaultVideoID
	}
	chat, err := BuildChat()
	if err != nil {
		return fmt.Errorf("build mock chat: %w", err)
	}
	subs, err := BuildSubtitles(videoID)
	if err != nil {
		return fmt.Errorf("build mock subtitles: %w", err)
	}
	if err := st.WriteChat(videoID, chat); err != nil {
		return err
	}
	return st.WriteSubtitles(videoID, subs)
}
