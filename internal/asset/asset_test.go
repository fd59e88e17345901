package asset

import "testing"

func TestSourceAsset_Ext(t *testing.T) {
	tests := []struct {
		name  string
		asset SourceAsset
		want  string
	}{
		{"filetype preferred", SourceAsset{Name: "talk.wav", Filetype: "m4a"}, ".m4a"},
		{"falls back to name", SourceAsset{Name: "talk.wav"}, ".wav"},
		{"no hint at all", SourceAsset{Name: "talk"}, ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.asset.Ext(); got != tt.want {
				t.Errorf("Ext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterAudio(t *testing.T) {
	assets := []SourceAsset{
		{ID: "F1", Mimetype: "audio/mp4"},
		{ID: "F2", Mimetype: "image/png"},
		{ID: "F3", Mimetype: "audio/mpeg"},
		{ID: "F4", Mimetype: "video/mp4"},
		{ID: "F5", Mimetype: ""},
	}

	got := FilterAudio(assets)
	if len(got) != 2 {
		t.Fatalf("FilterAudio() returned %d assets, want 2", len(got))
	}
	if got[0].ID != "F1" || got[1].ID != "F3" {
		t.Errorf("FilterAudio() did not preserve order: got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestFilterAudio_Empty(t *testing.T) {
	if got := FilterAudio(nil); got != nil {
		t.Errorf("FilterAudio(nil) = %v, want nil", got)
	}
	if got := FilterAudio([]SourceAsset{{Mimetype: "text/plain"}}); got != nil {
		t.Errorf("FilterAudio() with no audio = %v, want nil", got)
	}
}
