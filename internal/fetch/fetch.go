package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Error reports a failed download. StatusCode is zero for transport
// and write failures.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher downloads remote assets with bearer-token authorization.
// The response body is streamed straight to disk, so asset size is
// bounded by disk space, not memory.
type Fetcher struct {
	token  string
	client *http.Client
	log    zerolog.Logger
}

func New(token string, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		token:  token,
		client: &http.Client{Timeout: 10 * time.Minute},
		log:    log.With().Str("component", "fetch").Logger(),
	}
}

// Download streams url to dest, creating or overwriting dest, and
// returns the number of bytes written. A partial file may remain on
// failure; removing it is the caller's responsibility.
func (f *Fetcher) Download(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &Error{URL: url, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, &Error{URL: url, Err: err}
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return n, &Error{URL: url, Err: err}
	}

	f.log.Debug().Str("url", url).Str("dest", dest).Int64("bytes", n).Msg("download complete")
	return n, nil
}
