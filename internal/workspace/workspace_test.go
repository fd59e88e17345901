package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/vlsk3104/voice-transcriber-app/internal/asset"
)

func testManager(t *testing.T) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	return NewManager(root, zerolog.Nop()), root
}

func TestManager_Acquire(t *testing.T) {
	m, root := testManager(t)

	ws := m.Acquire(asset.SourceAsset{ID: "F123", Name: "meeting.mp3", Filetype: "mp3"})

	if want := filepath.Join(root, "F123.mp3"); ws.FilePath != want {
		t.Errorf("FilePath = %q, want %q", ws.FilePath, want)
	}
	if want := filepath.Join(root, "F123_segments"); ws.DirPath != want {
		t.Errorf("DirPath = %q, want %q", ws.DirPath, want)
	}

	// Acquire must not touch the disk.
	if _, err := os.Stat(ws.FilePath); !os.IsNotExist(err) {
		t.Errorf("Acquire created the scratch file")
	}
	if _, err := os.Stat(ws.DirPath); !os.IsNotExist(err) {
		t.Errorf("Acquire created the segment dir")
	}
}

func TestManager_Acquire_DistinctAssets(t *testing.T) {
	m, _ := testManager(t)

	a := m.Acquire(asset.SourceAsset{ID: "F1", Filetype: "mp3"})
	b := m.Acquire(asset.SourceAsset{ID: "F2", Filetype: "mp3"})

	if a.FilePath == b.FilePath || a.DirPath == b.DirPath {
		t.Errorf("workspaces for distinct assets collide: %+v vs %+v", a, b)
	}
}

func TestManager_Release(t *testing.T) {
	m, _ := testManager(t)
	ws := m.Acquire(asset.SourceAsset{ID: "F123", Filetype: "mp3"})

	if err := os.WriteFile(ws.FilePath, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ws.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(ws.DirPath, "segment_000.mp3"), []byte("seg"), 0o644); err != nil {
		t.Fatal(err)
	}

	m.Release(ws)

	if _, err := os.Stat(ws.FilePath); !os.IsNotExist(err) {
		t.Errorf("scratch file still exists after Release")
	}
	if _, err := os.Stat(ws.DirPath); !os.IsNotExist(err) {
		t.Errorf("segment dir still exists after Release")
	}
}

func TestManager_Release_NothingOnDisk(t *testing.T) {
	m, _ := testManager(t)
	ws := m.Acquire(asset.SourceAsset{ID: "F123", Filetype: "mp3"})

	// Must not panic or error when neither path exists.
	m.Release(ws)
	m.Release(ws)
}

func TestManager_Release_FileOnly(t *testing.T) {
	m, _ := testManager(t)
	ws := m.Acquire(asset.SourceAsset{ID: "F123", Filetype: "mp3"})

	if err := os.WriteFile(ws.FilePath, []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}

	m.Release(ws)

	if _, err := os.Stat(ws.FilePath); !os.IsNotExist(err) {
		t.Errorf("scratch file still exists after Release")
	}
}
