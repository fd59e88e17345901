package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/vlsk3104/voice-transcriber-app/internal/asset"
)

// segmentDirSuffix names the per-run segment directory next to the
// downloaded file, keyed by the asset id.
const segmentDirSuffix = "_segments"

// Workspace is the on-disk working area for a single pipeline run.
// FilePath holds the downloaded asset; DirPath holds segment files and
// is only created when segmentation happens.
type Workspace struct {
	FilePath string
	DirPath  string
}

// EnsureDir creates the segment directory. Called by the split path
// only, so that the directory exists iff segmentation was attempted.
func (w Workspace) EnsureDir() error {
	if err := os.MkdirAll(w.DirPath, 0o755); err != nil {
		return fmt.Errorf("create segment dir %s: %w", w.DirPath, err)
	}
	return nil
}

// Manager allocates and tears down scratch workspaces under a shared
// scratch root. Paths are deterministic per asset id, so concurrent
// runs for distinct assets never collide.
type Manager struct {
	root string
	log  zerolog.Logger
}

func NewManager(root string, log zerolog.Logger) *Manager {
	if root == "" {
		root = os.TempDir()
	}
	return &Manager{root: root, log: log.With().Str("component", "workspace").Logger()}
}

// Acquire returns the workspace for one run. Nothing is created on
// disk yet; the fetcher creates the file and EnsureDir creates the
// directory when needed.
func (m *Manager) Acquire(a asset.SourceAsset) Workspace {
	return Workspace{
		FilePath: filepath.Join(m.root, a.ID+a.Ext()),
		DirPath:  filepath.Join(m.root, a.ID+segmentDirSuffix),
	}
}

// Release removes the workspace from disk, best-effort. Absence of
// either path is not an error, and removal failures are logged but
// never returned so teardown cannot mask a pipeline-stage error.
func (m *Manager) Release(w Workspace) {
	if _, err := os.Stat(w.FilePath); err == nil {
		if err := os.Remove(w.FilePath); err != nil {
			m.log.Warn().Err(err).Str("path", w.FilePath).Msg("failed to remove scratch file")
		}
	}
	if _, err := os.Stat(w.DirPath); err == nil {
		if err := os.RemoveAll(w.DirPath); err != nil {
			m.log.Warn().Err(err).Str("path", w.DirPath).Msg("failed to remove segment dir")
		}
	}
}
