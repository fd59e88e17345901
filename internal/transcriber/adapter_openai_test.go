package transcriber

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("fake mp3 payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenAIAdapter_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if model := r.FormValue("model"); model != "whisper-1" {
			t.Errorf("model = %q, want whisper-1", model)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer srv.Close()

	a := NewOpenAIAdapter(Config{
		Provider: "openai",
		APIKey:   "sk-test",
		Model:    "whisper-1",
		BaseURL:  srv.URL + "/v1",
	})

	text, err := a.Transcribe(context.Background(), writeTempAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("Transcribe() = %q, want %q", text, "hello world")
	}
}

func TestOpenAIAdapter_Transcribe_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	a := NewOpenAIAdapter(Config{
		Provider: "openai",
		APIKey:   "sk-test",
		Model:    "whisper-1",
		BaseURL:  srv.URL + "/v1",
	})

	path := writeTempAudio(t)
	_, err := a.Transcribe(context.Background(), path)
	if err == nil {
		t.Fatal("Transcribe() expected error for service rejection")
	}

	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("Transcribe() error type = %T, want *transcriber.Error", err)
	}
	if te.Path != path {
		t.Errorf("Error.Path = %q, want %q", te.Path, path)
	}
}

func TestOpenAIAdapter_Transcribe_MissingFile(t *testing.T) {
	a := NewOpenAIAdapter(Config{Provider: "openai", APIKey: "sk-test", Model: "whisper-1"})

	_, err := a.Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil {
		t.Fatal("Transcribe() expected error for missing file")
	}
}
