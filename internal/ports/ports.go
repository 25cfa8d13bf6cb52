package ports

import "context"

type ChatFetcher interface {
	FetchChat(ctx context.Context, videoID, destPath string) error
}

type SubtitleFetcher interface {
	FetchSubtitles(ctx context.Context, videoID, destPath string) error
}
