package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vlsk3104/voice-transcriber-app/internal/segment"
)

// FakeFetcher implements pipeline.Fetcher by writing Size bytes of
// filler to the destination path.
type FakeFetcher struct {
	Size int64
	Err  error

	mu    sync.Mutex
	Calls int
}

func (f *FakeFetcher) Download(ctx context.Context, url, dest string) (int64, error) {
	f.mu.Lock()
	f.Calls++
	f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	if err := os.WriteFile(dest, bytes.Repeat([]byte{0xAA}, int(f.Size)), 0o644); err != nil {
		return 0, err
	}
	return f.Size, nil
}

// FakeSegmenter implements pipeline.Segmenter. Split creates
// SegmentCount files in outDir and returns them through
// segment.CollectSegments, the same listing path the real splitter
// uses.
type FakeSegmenter struct {
	SegmentCount int
	ProbeErr     error
	SplitErr     error
	SplitCalls   int
	ProbeCalls   int
}

func (s *FakeSegmenter) Probe(ctx context.Context, path string) (segment.Metadata, error) {
	s.ProbeCalls++
	if s.ProbeErr != nil {
		return segment.Metadata{}, s.ProbeErr
	}
	return segment.Metadata{FormatName: "mp3", Duration: 1800}, nil
}

func (s *FakeSegmenter) Split(ctx context.Context, path, outDir string, seconds int) ([]segment.Segment, error) {
	s.SplitCalls++
	if s.SplitErr != nil {
		return nil, s.SplitErr
	}
	// Write in reverse so ordering cannot come from creation order.
	for i := s.SegmentCount - 1; i >= 0; i-- {
		name := fmt.Sprintf("segment_%03d.mp3", i)
		if err := os.WriteFile(filepath.Join(outDir, name), []byte("seg"), 0o644); err != nil {
			return nil, err
		}
	}
	return segment.CollectSegments(outDir)
}

// MockTranscriber records every transcription call and answers from
// TranscribeFunc, or with a fixed text when unset. Safe for use from
// concurrent pipeline runs.
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, path string) (string, error)

	mu    sync.Mutex
	Paths []string
}

func (m *MockTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	m.Paths = append(m.Paths, path)
	m.mu.Unlock()
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, path)
	}
	return "mock transcription", nil
}

// WriteFileOfSize creates a file of exactly size bytes.
func WriteFileOfSize(t *testing.T, path string, size int64) {
	t.Helper()
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x01}, int(size)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
