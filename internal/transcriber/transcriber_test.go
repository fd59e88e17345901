package transcriber

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid openai config",
			config: Config{Provider: "openai", APIKey: "sk-test", Model: "whisper-1"},
		},
		{
			name:   "model defaulted",
			config: Config{Provider: "openai", APIKey: "sk-test"},
		},
		{
			name:    "missing api key",
			config:  Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "unsupported provider",
			config:  Config{Provider: "assemblyai", APIKey: "key"},
			wantErr: true,
		},
		{
			name:    "empty provider",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tr == nil {
				t.Error("New() returned nil transcriber without error")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.Model != "whisper-1" {
		t.Errorf("Model = %q, want whisper-1", cfg.Model)
	}
}
