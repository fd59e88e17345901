package segment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Segment is one bounded-duration, independently decodable slice of a
// source asset. Index is parsed from the zero-padded numeric suffix of
// the filename and is the only ordering information a segment carries.
type Segment struct {
	Index int
	Path  string
}

// ProbeError reports that the external tool could not parse the input
// as a media container (corrupt download, unsupported codec).
type ProbeError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// SplitError reports a failed split: the encode itself, reading the
// output directory afterward, or a run producing zero segments.
type SplitError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("split %s: %v", e.Path, e.Err)
}

func (e *SplitError) Unwrap() error { return e.Err }

// parseIndex extracts the numeric index from a segment filename such
// as "segment_002.mp3". The 3-digit zero-padded pattern caps a run at
// 1000 segments; indexes that do not parse are a hard error so a
// naming overflow fails loudly instead of mis-sorting.
func parseIndex(name string) (int, error) {
	base := strings.TrimPrefix(name, segmentPrefix)
	if base == name {
		return 0, fmt.Errorf("not a segment file: %s", name)
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	idx, err := strconv.Atoi(base)
	if err != nil {
		return 0, fmt.Errorf("bad segment index in %s: %w", name, err)
	}
	return idx, nil
}

// sortSegments orders segments by ascending index. The external tool's
// completion callback gives no ordering guarantee, so callers must
// always go through this.
func sortSegments(segs []Segment) {
	sort.Slice(segs, func(i, j int) bool { return segs[i].Index < segs[j].Index })
}
