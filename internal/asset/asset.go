package asset

import (
	"path/filepath"
	"strings"
)

// SourceAsset identifies one remote audio file to transcribe.
// It is built from the inbound file descriptor and never mutated
// after construction, except for Size which is known only after
// the download completes.
type SourceAsset struct {
	ID       string
	Name     string
	URL      string
	Mimetype string
	Filetype string
	Size     int64
}

// Ext returns the file extension used for the local scratch copy,
// preferring the declared filetype over whatever the display name carries.
func (a SourceAsset) Ext() string {
	if a.Filetype != "" {
		return "." + a.Filetype
	}
	if ext := filepath.Ext(a.Name); ext != "" {
		return ext
	}
	return ".bin"
}

// IsAudio reports whether the declared mimetype is an audio type.
func (a SourceAsset) IsAudio() bool {
	return strings.HasPrefix(a.Mimetype, "audio/")
}

// FilterAudio returns the subset of assets whose mimetype begins with
// "audio/", preserving the input order.
func FilterAudio(assets []SourceAsset) []SourceAsset {
	var out []SourceAsset
	for _, a := range assets {
		if a.IsAudio() {
			out = append(out, a)
		}
	}
	return out
}
