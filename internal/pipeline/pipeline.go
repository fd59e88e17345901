package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vlsk3104/voice-transcriber-app/internal/asset"
	"github.com/vlsk3104/voice-transcriber-app/internal/metrics"
	"github.com/vlsk3104/voice-transcriber-app/internal/segment"
	"github.com/vlsk3104/voice-transcriber-app/internal/transcriber"
	"github.com/vlsk3104/voice-transcriber-app/internal/workspace"
)

// SizeLimit is the largest file the transcription service accepts in
// one request. Files strictly above it are split; a file of exactly
// this size goes through directly.
const SizeLimit = 25 * 1024 * 1024

// Stage tags a pipeline phase for error reporting.
type Stage string

const (
	StageFetching         Stage = "fetching"
	StageSizeCheck        Stage = "size_check"
	StageDirectTranscribe Stage = "direct_transcribe"
	StageSplitting        Stage = "splitting"
	StageSegmentLoop      Stage = "segment_loop"
)

// StageError wraps a component failure with the stage it happened in.
// There is no local recovery at any stage; the error propagates to the
// single top-level caller.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Fetcher downloads a remote asset to a local path.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) (int64, error)
}

// Segmenter probes and splits local audio files.
type Segmenter interface {
	Probe(ctx context.Context, path string) (segment.Metadata, error)
	Split(ctx context.Context, path, outDir string, seconds int) ([]segment.Segment, error)
}

// Config tunes one pipeline instance.
type Config struct {
	SizeLimit      int64
	SegmentSeconds int
}

func DefaultConfig() Config {
	return Config{
		SizeLimit:      SizeLimit,
		SegmentSeconds: segment.DefaultSegmentSeconds,
	}
}

// Pipeline orchestrates fetch, size check, optional segmentation,
// transcription, and aggregation for one asset at a time. Instances
// are safe for concurrent runs because each run's workspace is
// namespaced by asset id and no mutable state is shared.
type Pipeline struct {
	fetcher     Fetcher
	segmenter   Segmenter
	transcriber transcriber.Transcriber
	workspaces  *workspace.Manager
	cfg         Config
	log         zerolog.Logger
}

func New(f Fetcher, s Segmenter, t transcriber.Transcriber, w *workspace.Manager, cfg Config, log zerolog.Logger) *Pipeline {
	if cfg.SizeLimit <= 0 {
		cfg.SizeLimit = SizeLimit
	}
	if cfg.SegmentSeconds <= 0 {
		cfg.SegmentSeconds = segment.DefaultSegmentSeconds
	}
	return &Pipeline{
		fetcher:     f,
		segmenter:   s,
		transcriber: t,
		workspaces:  w,
		cfg:         cfg,
		log:         log.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes the full pipeline for one asset and returns the final
// transcript. The workspace is released on every exit path; teardown
// failures are logged by the workspace manager and never surface here.
func (p *Pipeline) Run(ctx context.Context, a asset.SourceAsset) (text string, err error) {
	ws := p.workspaces.Acquire(a)
	defer p.workspaces.Release(ws)

	defer func() {
		outcome := "ok"
		var se *StageError
		if err != nil {
			outcome = "error"
			if errors.As(err, &se) {
				outcome = string(se.Stage)
			}
		}
		metrics.PipelineRuns.WithLabelValues(outcome).Inc()
	}()

	log := p.log.With().Str("asset", a.ID).Str("name", a.Name).Logger()

	written, err := p.fetcher.Download(ctx, a.URL, ws.FilePath)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		return "", &StageError{Stage: StageFetching, Err: err}
	}
	metrics.FetchedBytes.Add(float64(written))

	fi, err := os.Stat(ws.FilePath)
	if err != nil {
		return "", &StageError{Stage: StageSizeCheck, Err: err}
	}
	size := fi.Size()

	if size <= p.cfg.SizeLimit {
		log.Info().Int64("bytes", size).Msg("within size limit, transcribing directly")
		fragment, err := p.transcribe(ctx, ws.FilePath)
		if err != nil {
			return "", &StageError{Stage: StageDirectTranscribe, Err: err}
		}
		return fragment + " ", nil
	}

	log.Info().Int64("bytes", size).Msg("over size limit, splitting")

	if err := ws.EnsureDir(); err != nil {
		return "", &StageError{Stage: StageSplitting, Err: err}
	}
	if _, err := p.segmenter.Probe(ctx, ws.FilePath); err != nil {
		return "", &StageError{Stage: StageSplitting, Err: err}
	}
	segs, err := p.segmenter.Split(ctx, ws.FilePath, ws.DirPath, p.cfg.SegmentSeconds)
	if err != nil {
		return "", &StageError{Stage: StageSplitting, Err: err}
	}
	metrics.SegmentsPerRun.Observe(float64(len(segs)))

	// Split already sorts, but index order is the only thing that
	// reconstructs chronological transcript order, so enforce it here
	// too rather than trusting the segmenter implementation.
	sort.Slice(segs, func(i, j int) bool { return segs[i].Index < segs[j].Index })

	var b strings.Builder
	for _, seg := range segs {
		fragment, err := p.transcribe(ctx, seg.Path)
		if err != nil {
			log.Error().Err(err).Int("segment", seg.Index).Msg("segment transcription failed, aborting run")
			return "", &StageError{Stage: StageSegmentLoop, Err: err}
		}
		b.WriteString(fragment)
		b.WriteString(" ")
	}

	log.Info().Int("segments", len(segs)).Msg("run complete")
	return b.String(), nil
}

func (p *Pipeline) transcribe(ctx context.Context, path string) (string, error) {
	start := time.Now()
	text, err := p.transcriber.Transcribe(ctx, path)
	if err != nil {
		return "", err
	}
	metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	return text, nil
}

