package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const (
	chatSuffix     = "_chat.json"
	subtitleSuffix = "_subtitle.json"
)

// Video ids are path segments; anything outside this set could escape the
// data dir.
var validVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidVideoID reports whether id is safe to use as an artifact file stem.
func ValidVideoID(id string) bool {
	return validVideoID.MatchString(id)
}

// Store is the on-disk cache of fetched artifacts, one pair of files per
// video id.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("data dir is empty")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

func (s *Store) ChatPath(videoID string) (string, error) {
	return s.path(videoID, chatSuffix)
}

func (s *Store) SubtitlePath(videoID string) (string, error) {
	return s.path(videoID, subtitleSuffix)
}

func (s *Store) path(videoID, suffix string) (string, error) {
	if !validVideoID.MatchString(videoID) {
		return "", fmt.Errorf("invalid video id %q", videoID)
	}
	return filepath.Join(s.dir, videoID+suffix), nil
}

func (s *Store) HasChat(videoID string) bool {
	return s.has(videoID, chatSuffix)
}

func (s *Store) HasSubtitles(videoID string) bool {
	return s.has(videoID, subtitleSuffix)
}

func (s *Store) has(videoID, suffix string) bool {
	p, err := s.path(videoID, suffix)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

func (s *Store) ReadChat(videoID string) ([]byte, error) {
	return s.read(videoID, chatSuffix)
}

func (s *Store) ReadSubtitles(videoID string) ([]byte, error) {
	return s.read(videoID, subtitleSuffix)
}

func (s *Store) read(videoID, suffix string) ([]byte, error) {
	p, err := s.path(videoID, suffix)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return b, nil
}

func (s *Store) WriteChat(videoID string, data []byte) error {
	return s.write(videoID, chatSuffix, data)
}

func (s *Store) WriteSubtitles(videoID string, data []byte) error {
	return s.write(videoID, subtitleSuffix, data)
}

func (s *Store) write(videoID, suffix string, data []byte) error {
	p, err := s.path(videoID, suffix)
	if err != nil {
		return err
	}
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// Entry describes which artifacts are cached for one video.
type Entry struct {
	VideoID      string `json:"video_id"`
	HasChat      bool   `json:"has_chat"`
	HasSubtitles bool   `json:"has_subtitles"`
}

// List scans the data dir and reports every video with at least one cached
// artifact, ordered by video id.
func (s *Store) List() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan data dir: %w", err)
	}

	byID := make(map[string]*Entry)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		var id string
		var chat bool
		switch {
		case strings.HasSuffix(name, chatSuffix):
			id, chat = strings.TrimSuffix(name, chatSuffix), true
		case strings.HasSuffix(name, subtitleSuffix):
			id = strings.TrimSuffix(name, subtitleSuffix)
		default:
			continue
		}
		if !validVideoID.MatchString(id) {
			continue
		}
		e, ok := byID[id]
		if !ok {
			e = &Entry{VideoID: id}
			byID[id] = e
		}
		if chat {
			e.HasChat = true
		} else {
			e.HasSubtitles = true
		}
	}

	out := make([]Entry, 0, len(byID))
	for _, e := range byID {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VideoID < out[j].VideoID })
	return out, nil
}
