package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestStoreRoundtrip(t *testing.T) {
	t.Parallel()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.HasChat("vid_1") || s.HasSubtitles("vid_1") {
		t.Fatal("artifacts reported before any write")
	}

	if err := s.WriteChat("vid_1", []byte(`{"events":[]}`)); err != nil {
		t.Fatalf("WriteChat: %v", err)
	}
	if !s.HasChat("vid_1") {
		t.Error("HasChat false after write")
	}
	if s.HasSubtitles("vid_1") {
		t.Error("HasSubtitles true without a subtitle write")
	}

	b, err := s.ReadChat("vid_1")
	if err != nil {
		t.Fatalf("ReadChat: %v", err)
	}
	if string(b) != `{"events":[]}` {
		t.Errorf("ReadChat = %q", b)
	}

	if err := s.WriteSubtitles("vid_1", []byte(`{}`)); err != nil {
		t.Fatalf("WriteSubtitles: %v", err)
	}
	if !s.HasSubtitles("vid_1") {
		t.Error("HasSubtitles false after write")
	}
}

func TestStoreCreatesDataDirOnWrite(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.WriteChat("abc", []byte("{}")); err != nil {
		t.Fatalf("WriteChat: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc_chat.json")); err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
}

func TestStoreRejectsBadVideoIDs(t *testing.T) {
	t.Parallel()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, id := range []string{"", "../evil", "a/b", "id with spaces", strings.Repeat("x", 65)} {
		if _, err := s.ChatPath(id); err == nil {
			t.Errorf("ChatPath(%q): want error", id)
		}
		if err := s.WriteChat(id, []byte("{}")); err == nil {
			t.Errorf("WriteChat(%q): want error", id)
		}
		if s.HasChat(id) {
			t.Errorf("HasChat(%q) = true", id)
		}
	}
}

func TestStoreReadMissing(t *testing.T) {
	t.Parallel()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.ReadChat("nothere"); err == nil {
		t.Fatal("ReadChat on missing artifact: want error")
	}
}

func TestStoreList(t *testing.T) {
	t.Parallel()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if entries, err := s.List(); err != nil || entries != nil {
		t.Fatalf("List on empty store = %+v, %v, want nil, nil", entries, err)
	}

	if err := s.WriteChat("bbb", []byte("{}")); err != nil {
		t.Fatalf("WriteChat: %v", err)
	}
	if err := s.WriteSubtitles("bbb", []byte("{}")); err != nil {
		t.Fatalf("WriteSubtitles: %v", err)
	}
	if err := s.WriteSubtitles("aaa", []byte("{}")); err != nil {
		t.Fatalf("WriteSubtitles: %v", err)
	}
	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Entry{
		{VideoID: "aaa", HasSubtitles: true},
		{VideoID: "bbb", HasChat: true, HasSubtitles: true},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("List = %+v, want %+v", entries, want)
	}
}

func TestNewRequiresDir(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatal("New with empty dir: want error")
	}
}

func TestStoreListMissingDir(t *testing.T) {
	t.Parallel()
	s, err := New(filepath.Join(t.TempDir(), "never-created"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	entries, err := s.List()
	if err != nil || entries != nil {
		t.Fatalf("List = %+v, %v, want nil, nil", entries, err)
	}
}
