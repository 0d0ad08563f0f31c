package config

import (
	"os"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Translator: TranslatorConfig{BaseURL: "http://localhost:5000"},
				Summarizer: SummarizerConfig{Endpoint: "http://localhost:8081/summarize"},
				TTS:        TTSConfig{BaseURL: "https://api.openai.com"},
			},
			wantErr: false,
		},
		{
			name: "missing translator base url",
			config: Config{
				Summarizer: SummarizerConfig{Endpoint: "http://localhost:8081/summarize"},
				TTS:        TTSConfig{BaseURL: "https://api.openai.com"},
			},
			wantErr: true,
		},
		{
			name: "missing summarizer endpoint",
			config: Config{
				Translator: TranslatorConfig{BaseURL: "http://localhost:5000"},
				TTS:        TTSConfig{BaseURL: "https://api.openai.com"},
			},
			wantErr: true,
		},
		{
			name: "missing tts base url",
			config: Config{
				Translator: TranslatorConfig{BaseURL: "http://localhost:5000"},
				Summarizer: SummarizerConfig{Endpoint: "http://localhost:8081/summarize"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Translator: TranslatorConfig{BaseURL: "http://localhost:5000"},
		Summarizer: SummarizerConfig{Endpoint: "http://localhost:8081/summarize"},
		TTS:        TTSConfig{BaseURL: "https://api.openai.com"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %v, want :8080", cfg.Server.Addr)
	}
	if cfg.LLM.Model != "gemini-2.5-flash" {
		t.Errorf("LLM.Model = %v, want gemini-2.5-flash", cfg.LLM.Model)
	}
	if cfg.LLM.QuizQuestions != 10 {
		t.Errorf("LLM.QuizQuestions = %v, want 10", cfg.LLM.QuizQuestions)
	}
	if cfg.TTS.Voice != "alloy" {
		t.Errorf("TTS.Voice = %v, want alloy", cfg.TTS.Voice)
	}
	if cfg.Translator.ChunkChars != 512 {
		t.Errorf("Translator.ChunkChars = %v, want 512", cfg.Translator.ChunkChars)
	}
	if len(cfg.Languages) != 4 {
		t.Errorf("len(Languages) = %v, want 4", len(cfg.Languages))
	}
	if len(cfg.Translator.Pairs) == 0 {
		t.Error("Translator.Pairs should have defaults")
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9090"
  task_timeout_seconds: 45

translator:
  base_url: "http://localhost:5000"
  pairs: ["en-es", "es-en"]

summarizer:
  endpoint: "http://localhost:8081/summarize"
  model: "facebook/bart-large-cnn"

tts:
  base_url: "https://api.openai.com"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.TaskTimeoutSec != 45 {
		t.Errorf("TaskTimeoutSec = %v, want 45", cfg.Server.TaskTimeoutSec)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if len(cfg.Translator.Pairs) != 2 {
		t.Errorf("len(Translator.Pairs) = %v, want 2", len(cfg.Translator.Pairs))
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLanguageName(t *testing.T) {
	cfg := Config{Languages: []Language{{Code: "en", Name: "English"}}}

	if got := cfg.LanguageName("en"); got != "English" {
		t.Errorf("LanguageName(en) = %v, want English", got)
	}
	if got := cfg.LanguageName("xx"); got != "xx" {
		t.Errorf("LanguageName(xx) = %v, want xx (fallback)", got)
	}
}
