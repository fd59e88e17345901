package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	// PipelineRuns counts completed pipeline runs by outcome
	// ("ok" or the failed stage name).
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_transcriber_pipeline_runs_total",
		Help: "Completed transcription pipeline runs by outcome.",
	}, []string{"outcome"})

	// SegmentsPerRun observes how many segments a split produced.
	SegmentsPerRun = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_transcriber_segments_per_run",
		Help:    "Number of segments produced per split run.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
	})

	// TranscriptionDuration observes the wall time of a single
	// transcription service call.
	TranscriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_transcriber_transcription_duration_seconds",
		Help:    "Duration of individual transcription API calls.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// FetchedBytes counts total bytes downloaded from the chat platform.
	FetchedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voice_transcriber_fetched_bytes_total",
		Help: "Total bytes of audio downloaded.",
	})
)

// Serve exposes /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics listener starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
