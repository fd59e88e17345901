package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// DefaultSegmentSeconds is the fixed chunk duration used when the
	// caller does not override it.
	DefaultSegmentSeconds = 300

	segmentPrefix  = "segment_"
	segmentPattern = "segment_%03d.mp3"
)

// Metadata is the result of a pre-flight probe.
type Metadata struct {
	FormatName string
	Duration   float64
}

// Splitter drives ffmpeg/ffprobe as blocking subprocess calls. Chunks
// are re-encoded to MP3 at 128 kb/s so every segment is self-contained
// and independently decodable; splitting the compressed byte stream
// directly would produce undecodable fragments.
type Splitter struct {
	ffmpegPath  string
	ffprobePath string
	log         zerolog.Logger
}

func NewSplitter(log zerolog.Logger) *Splitter {
	return &Splitter{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		log:         log.With().Str("component", "segment").Logger(),
	}
}

type probeFormat struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

// Probe validates that path is a readable media container before any
// split attempt, failing fast on corrupt or unsupported input.
func (s *Splitter) Probe(ctx context.Context, path string) (Metadata, error) {
	cmd := exec.CommandContext(ctx, s.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Metadata{}, &ProbeError{Path: path, Stderr: stderr.String(), Err: err}
	}

	var pf probeFormat
	if err := json.Unmarshal(stdout.Bytes(), &pf); err != nil {
		return Metadata{}, &ProbeError{Path: path, Err: fmt.Errorf("parse ffprobe output: %w", err)}
	}

	md := Metadata{FormatName: pf.Format.FormatName}
	if pf.Format.Duration != "" {
		if d, err := strconv.ParseFloat(pf.Format.Duration, 64); err == nil {
			md.Duration = d
		}
	}

	s.log.Debug().Str("path", path).Str("format", md.FormatName).Float64("duration", md.Duration).Msg("probe ok")
	return md, nil
}

// Split re-encodes path into fixed-duration chunks under outDir and
// returns them in ascending index order. seconds <= 0 selects the
// default duration. Zero produced segments is an error: a run with no
// transcription units is not a valid result.
func (s *Splitter) Split(ctx context.Context, path, outDir string, seconds int) ([]Segment, error) {
	if seconds <= 0 {
		seconds = DefaultSegmentSeconds
	}

	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-hide_banner", "-nostdin", "-y",
		"-i", path,
		"-f", "segment",
		"-segment_time", strconv.Itoa(seconds),
		"-reset_timestamps", "1",
		"-map", "0:a",
		"-c:a", "libmp3lame",
		"-b:a", "128k",
		filepath.Join(outDir, segmentPattern),
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &SplitError{Path: path, Stderr: stderr.String(), Err: err}
	}

	segs, err := CollectSegments(outDir)
	if err != nil {
		return nil, &SplitError{Path: path, Err: err}
	}
	if len(segs) == 0 {
		return nil, &SplitError{Path: path, Stderr: stderr.String(), Err: fmt.Errorf("ffmpeg produced no segments")}
	}

	s.log.Info().Str("path", path).Int("segments", len(segs)).Int("seconds", seconds).Msg("split complete")
	return segs, nil
}

// CollectSegments lists dir, keeps generated segment files, and
// returns them sorted by index. The subprocess completion order is
// never trusted for ordering.
func CollectSegments(dir string) ([]Segment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read segment dir %s: %w", dir, err)
	}

	var segs []Segment
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), segmentPrefix) {
			continue
		}
		idx, err := parseIndex(e.Name())
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{Index: idx, Path: filepath.Join(dir, e.Name())})
	}

	sortSegments(segs)
	return segs, nil
}
