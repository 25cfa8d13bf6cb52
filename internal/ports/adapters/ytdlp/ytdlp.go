package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Minute

type Adapter struct {
	bin     string
	timeout time.Duration
}

func New(binPath string, timeout time.Duration) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{bin: binPath, timeout: timeout}
}

func (a *Adapter) Bin() string { return a.bin }

// FetchChat downloads the live-chat replay for videoID into destPath.
// yt-dlp exposes chat replays of archived live streams as a subtitle track
// named live_chat; the json3 file it writes is moved to destPath.
func (a *Adapter) FetchChat(ctx context.Context, videoID, destPath string) error {
	workDir := filepath.Dir(destPath)
	args := []string{
		"--skip-download",
		"--write-subs",
		"--sub-lang", "live_chat",
		"--sub-format", "json3",
		"-o", filepath.Join(workDir, videoID+".%(ext)s"),
		"https://www.youtube.com/watch?v=" + videoID,
	}

	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("yt-dlp timed out after %s for %s", a.timeout, videoID)
		}
		return classifyError(videoID, err, string(b))
	}

	src := filepath.Join(workDir, videoID+".live_chat.json")
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("no chat replay available for %s (only archived live streams have one)", videoID)
	}
	if err := os.Rename(src, destPath); err != nil {
		return fmt.Errorf("move chat artifact: %w", err)
	}
	return nil
}

// classifyError turns common yt-dlp failures into messages that name the
// problem instead of dumping raw tool output.
func classifyError(videoID string, err error, output string) error {
	low := strings.ToLower(output)
	switch {
	case strings.Contains(low, "private video"):
		return fmt.Errorf("video %s is private", videoID)
	case strings.Contains(low, "video unavailable"):
		return fmt.Errorf("video %s is unavailable", videoID)
	case strings.Contains(low, "unable to download"), strings.Contains(low, "network"):
		return fmt.Errorf("network failure fetching %s: %w", videoID, err)
	}
	return fmt.Errorf("yt-dlp failed for %s: %w\n%s", videoID, err, truncate(output, 400))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
